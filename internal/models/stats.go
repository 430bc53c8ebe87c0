package models

type SRSStats struct {
	TotalWords      int     `json:"total_words"`
	DueToday        int     `json:"due_today"`
	DueTomorrow     int     `json:"due_tomorrow"`
	TotalReviews    int     `json:"total_reviews"`
	AverageAccuracy float64 `json:"average_accuracy"`
}
