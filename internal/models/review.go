package models

import "time"

// ReviewState is the scheduler-owned record for one tracked word.
// It is joined to catalogue content only by WordID and is mutated
// as a whole row, never field by field.
type ReviewState struct {
	WordID         string    `json:"word_id"`
	Level          int       `json:"level"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	NextReviewAt   time.Time `json:"next_review_at"`
	ReviewCount    int       `json:"review_count"`
	CorrectCount   int       `json:"correct_count"`
	IncorrectCount int       `json:"incorrect_count"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// DueWord is a review state joined with its catalogue entry,
// returned by the due/upcoming queries.
type DueWord struct {
	ReviewState
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Category   string `json:"category"`
}

// ReviewEntry is one line of the append-only review log.
type ReviewEntry struct {
	ID         int64     `json:"id"`
	WordID     string    `json:"word_id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// WordHistory summarizes the review record of a single word.
// An untracked word yields the zero value, not an error.
type WordHistory struct {
	WordID         string     `json:"word_id"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	Accuracy       float64    `json:"accuracy"`
	LastReviewedAt *time.Time    `json:"last_reviewed_at"`
	NextReviewAt   *time.Time    `json:"next_review_at"`
	Entries        []ReviewEntry `json:"entries"`
}

// LearningQueue pairs due reviews with catalogue words not yet tracked.
type LearningQueue struct {
	DueReviews []DueWord `json:"due_reviews"`
	NewWords   []Word    `json:"new_words"`
}
