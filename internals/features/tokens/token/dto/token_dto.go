package dto

// LeaderboardEntry: satu baris papan peringkat EduToken.
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	College      string `json:"college"`
	EduTokens    int    `json:"edutokens"`
	ExploreScore int    `json:"explore_score"`
}
