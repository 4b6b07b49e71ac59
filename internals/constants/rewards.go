package constants

// Reason code untuk EduToken ledger.
const (
	ReasonSafeUpload    = "safe_upload"
	ReasonMalwareReport = "malware_report"
	ReasonDailyLogin    = "daily_login"
	ReasonOCRUsage      = "ocr_usage"
	ReasonHighRated     = "high_rated_file"
	ReasonExploreView   = "explore_view"
	ReasonGroupCreate   = "group_create"
)

// RewardAmounts memetakan reason → jumlah token default.
// Reason yang tidak terdaftar di sini resolve ke 0 dan menjadi no-op di ledger.
var RewardAmounts = map[string]int{
	ReasonSafeUpload:    10,
	ReasonMalwareReport: 15,
	ReasonDailyLogin:    5,
	ReasonOCRUsage:      2,
	ReasonHighRated:     5,
	ReasonExploreView:   1,
	ReasonGroupCreate:   5,
}
