package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/wordflash/wordflash/internal/logger"
	"github.com/wordflash/wordflash/internal/models"
	"github.com/wordflash/wordflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: id=%s word=%s", w.ID, w.Word)

	synonyms, err := marshalList(w.Synonyms)
	if err != nil {
		return err
	}
	antonyms, err := marshalList(w.Antonyms)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO words (id, word, part_of_speech, definition, example, synonyms, antonyms, category, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, w.ID, w.Word, w.PartOfSpeech, w.Definition, w.Example, synonyms, antonyms, w.Category, w.CreatedAt)
	if err != nil {
		log.Error("failed to insert word: %v", err)
	}
	return err
}

func (r *wordRepository) InsertBatch(ctx context.Context, words []models.Word) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting batch of %d words", len(words))

	inserted := 0
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		for _, w := range words {
			synonyms, err := marshalList(w.Synonyms)
			if err != nil {
				return err
			}
			antonyms, err := marshalList(w.Antonyms)
			if err != nil {
				return err
			}
			res, err := t.ExecContext(ctx, `
INSERT OR IGNORE INTO words (id, word, part_of_speech, definition, example, synonyms, antonyms, category, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, w.ID, w.Word, w.PartOfSpeech, w.Definition, w.Example, synonyms, antonyms, w.Category, w.CreatedAt)
			if err != nil {
				return err
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert word batch: %v", err)
		return 0, err
	}
	log.Debug("inserted %d of %d words (duplicates skipped)", inserted, len(words))
	return inserted, nil
}

func (r *wordRepository) Get(ctx context.Context, id string) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%s", id)

	row := r.db.QueryRowContext(ctx, `
SELECT id, word, part_of_speech, definition, example, synonyms, antonyms, category, created_at
FROM words
WHERE id = ?
`, id)

	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: category=%s part_of_speech=%s limit=%d offset=%d",
		filter.Category, filter.PartOfSpeech, filter.Limit, filter.Offset)

	query := sqlBuilder.
		Select("id", "word", "part_of_speech", "definition", "example", "synonyms", "antonyms", "category", "created_at").
		From("words")

	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.PartOfSpeech != "" {
		query = query.Where(squirrel.Eq{"part_of_speech": filter.PartOfSpeech})
	}

	// Safe ORDER BY with validation
	orderBy := "created_at"
	if filter.OrderBy == "word" {
		orderBy = "word"
	}
	orderDir := "ASC"
	if filter.OrderDir == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, *w)
	}
	log.Debug("found %d words", len(words))
	return words, rows.Err()
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query := sqlBuilder.Select("COUNT(*)").From("words")
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.PartOfSpeech != "" {
		query = query.Where(squirrel.Eq{"part_of_speech": filter.PartOfSpeech})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count words: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *wordRepository) ListUntracked(ctx context.Context, limit int) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing untracked words: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT w.id, w.word, w.part_of_speech, w.definition, w.example, w.synonyms, w.antonyms, w.category, w.created_at
FROM words w
LEFT JOIN review_states r ON r.word_id = w.id
WHERE r.word_id IS NULL
ORDER BY w.created_at ASC, w.id ASC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to list untracked words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, *w)
	}
	log.Debug("found %d untracked words", len(words))
	return words, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*models.Word, error) {
	var w models.Word
	var synonyms, antonyms string
	if err := row.Scan(&w.ID, &w.Word, &w.PartOfSpeech, &w.Definition, &w.Example,
		&synonyms, &antonyms, &w.Category, &w.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(synonyms), &w.Synonyms); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(antonyms), &w.Antonyms); err != nil {
		return nil, err
	}
	return &w, nil
}

func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
