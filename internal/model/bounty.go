package model

type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type Bounty struct {
	ID             string      `json:"id"`
	ReporterID     string      `json:"reporter_id"`
	CleanerID      string      `json:"cleaner_id,omitempty"`
	Lat            *float64    `json:"lat"`
	Lon            *float64    `json:"lon"`
	Status         string      `json:"status"`
	BeforeImage    string      `json:"before_image"`
	AfterImage     string      `json:"after_image,omitempty"`
	NumObjects     int         `json:"num_objects"`
	PointsReporter int         `json:"points_reporter"`
	PointsCleaner  int         `json:"points_cleaner"`
	Labels         []Detection `json:"labels"`
	CreatedAt      string      `json:"created_at"`
	ClaimedAt      string      `json:"claimed_at,omitempty"`
	CompletedAt    string      `json:"completed_at,omitempty"`

	// Only set by list queries with a reference point.
	DistanceMeters *float64 `json:"distance_m,omitempty"`
}

// Multipart requests carry coordinates as text. Empty means absent.
type CreateBountyRequest struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type CreateBountyResponse Bounty

type ClaimBountyRequest struct {
	BountyID string   `json:"bounty_id"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

type ClaimBountyResponse Bounty

type CompleteBountyRequest struct {
	BountyID string `json:"bounty_id"`
	Lat      string `json:"lat"`
	Lon      string `json:"lon"`
}

type CompleteBountyResponse Bounty

type GetBountyRequest struct {
	ID string `json:"id"`
}

type GetBountyResponse Bounty

type GetListBountyRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`

	// Optional geo filter. All three must be given to take effect.
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Radius float64  `json:"radius"`
}

type GetListBountyResponse struct {
	Bounties []Bounty `json:"bounties"`
}

type GetMyBountiesRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetMyBountiesResponse struct {
	Bounties []Bounty `json:"bounties"`
}
