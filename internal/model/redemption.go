package model

type Redemption struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	WalletType  string `json:"wallet_type"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Points      int    `json:"points"`
	Amount      int    `json:"amount"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
}

type RequestRedemptionRequest struct {
	WalletType string `json:"wallet_type"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Amount     *int   `json:"amount"`
}

type RequestRedemptionResponse Redemption

type GetMyRedemptionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMyRedemptionsResponse struct {
	Redemptions []Redemption `json:"redemptions"`
	Balance     int          `json:"balance"`
}
