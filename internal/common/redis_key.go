package common

import "time"

const (
	CommunityStatsKey = "wastebounty:community_stats"
	CommunityStatsTTL = 10 * time.Minute
)
