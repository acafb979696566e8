package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Region    string `json:"region"`
	Phone     string `json:"phone,omitempty"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User   User `json:"user"`
	Points int  `json:"points"`
}

type GetPointsRequest struct{}

type GetPointsResponse struct {
	Points int `json:"points"`
}
