package entity

// User.ID is the user-supplied login id.
type User struct {
	Base
	Name         string
	BirthDate    string
	Region       string
	Phone        string
	PasswordHash string
}
