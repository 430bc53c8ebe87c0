package models

import "time"

type Word struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	PartOfSpeech string    `json:"part_of_speech"`
	Definition   string    `json:"definition"`
	Example      string    `json:"example"`
	Synonyms     []string  `json:"synonyms"`
	Antonyms     []string  `json:"antonyms"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}

// WordFilter narrows ListWords queries. Zero values mean "no filter".
type WordFilter struct {
	Category     string
	PartOfSpeech string
	Limit        int
	Offset       int
	OrderBy      string
	OrderDir     string
}
