package worker

import (
	"context"
	"time"

	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/wordlist"
)

// WordImporter persists a batch of parsed word entries.
// Declared here instead of importing the services package to avoid a cycle.
type WordImporter interface {
	ImportEntries(ctx context.Context, entries []wordlist.Entry, now time.Time) (int, error)
}

// ImportWordsJob inserts an already parsed word list in the background.
type ImportWordsJob struct {
	Importer WordImporter
	Entries  []wordlist.Entry
}

func (j *ImportWordsJob) Name() string { return "import_words" }

func (j *ImportWordsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("entries", len(j.Entries))
	log.Info("starting background import")

	inserted, err := j.Importer.ImportEntries(ctx, j.Entries, time.Now().UTC())
	if err != nil {
		log.Error("import failed: %v", err)
		return err
	}

	log.Info("import finished: inserted=%d skipped=%d", inserted, len(j.Entries)-inserted)
	return nil
}
