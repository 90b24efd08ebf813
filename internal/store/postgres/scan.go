package postgres

import (
	"database/sql"

	"github.com/simfra/lingod/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanTranslation scans a single row into a model.Translation.
// The row must contain columns in the order defined by translationColumns.
// A NULL value column becomes the empty string, marking the key untranslated.
func scanTranslation(row scannable) (*model.Translation, error) {
	var t model.Translation
	var value sql.NullString

	err := row.Scan(
		&t.ID,
		&t.Lang,
		&t.Key,
		&value,
		&t.Readonly,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Value = value.String
	return &t, nil
}

func scanTranslations(rows *sql.Rows) ([]*model.Translation, error) {
	var out []*model.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// nullString converts an empty string to a NULL database value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
