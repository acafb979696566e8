package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
	MissingField     Code = 100011

	// Bounty codes
	InvalidState      Code = 200001
	SelfClaim         Code = 200002
	NotOwner          Code = 200003
	LocationMissing   Code = 200004
	TooFar            Code = 200005
	NoDetection       Code = 200006
	WasteStillPresent Code = 200007
	AlreadyCompleted  Code = 200008

	// Redemption codes
	InvalidWallet       Code = 300001
	InsufficientBalance Code = 300002
	InvalidAmount       Code = 300003
	ExceedsBalance      Code = 300004

	// Collaborator codes
	ClassificationUnavailable Code = 400001
)

// softCodes are informational outcomes. The request did not change anything
// but the caller did nothing wrong either.
var softCodes = map[Code]bool{
	AlreadyCompleted: true,
}
