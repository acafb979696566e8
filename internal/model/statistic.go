package model

type CommunityStats struct {
	ActiveBountiesCount   int64 `json:"active_bounties_count"`
	TotalCleanedLocations int64 `json:"total_cleaned_locations"`
	CommunityUsersCount   int64 `json:"community_users_count"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	CommunityStats
	TotalPoints int `json:"total_points"`
}
