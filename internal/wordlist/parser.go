package wordlist

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Entry is one word in an import document.
type Entry struct {
	Word         string   `json:"word"`
	PartOfSpeech string   `json:"part_of_speech"`
	Definition   string   `json:"definition"`
	Example      string   `json:"example"`
	Synonyms     []string `json:"synonyms"`
	Antonyms     []string `json:"antonyms"`
	Category     string   `json:"category"`
}

// Document is the import format: a JSON object with a "words" array.
type Document struct {
	Words []Entry `json:"words"`
}

// Parse reads a word-list document and validates its entries.
// Entries must carry at least a word and a definition.
func Parse(r io.Reader) ([]Entry, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	if len(doc.Words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}

	for i := range doc.Words {
		e := &doc.Words[i]
		e.Word = strings.TrimSpace(e.Word)
		e.Definition = strings.TrimSpace(e.Definition)
		if e.Word == "" {
			return nil, fmt.Errorf("entry %d: missing word", i)
		}
		if e.Definition == "" {
			return nil, fmt.Errorf("entry %d (%s): missing definition", i, e.Word)
		}
	}
	return doc.Words, nil
}
