package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/simfra/lingod/internal/model"
)

// translationColumns is the column list used for SELECT statements on the
// translations table.
const translationColumns = `id, lang, key, value, readonly, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queryUpsertTranslation inserts or updates the unique (lang, key) row.
// The readonly flag is set only on insert; updates never alter it.
func queryUpsertTranslation(ctx context.Context, db executor, t *model.Translation) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO translations (lang, key, value, readonly)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lang, key) DO UPDATE SET value = $3, updated_at = NOW()
		RETURNING id, readonly, created_at, updated_at`,
		t.Lang,
		t.Key,
		nullString(t.Value),
		t.Readonly,
	).Scan(&t.ID, &t.Readonly, &t.CreatedAt, &t.UpdatedAt)
}

func queryGetTranslation(ctx context.Context, db executor, id int64) (*model.Translation, error) {
	row := db.QueryRowContext(ctx, `SELECT `+translationColumns+` FROM translations WHERE id = $1`, id)
	return scanTranslation(row)
}

func queryListTranslations(ctx context.Context, db executor, filter model.TranslationFilter) ([]*model.Translation, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Lang != "" {
		whereClauses = append(whereClauses, "lang = "+nextArg())
		args = append(args, filter.Lang)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(key ILIKE '%%' || %s || '%%' OR value ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	if clause, arg, ok := groupClause(filter.Group, nextArg); ok {
		whereClauses = append(whereClauses, clause)
		if arg != nil {
			args = append(args, arg)
		}
	}

	if filter.MissingOnly {
		whereClauses = append(whereClauses, "(value IS NULL OR value = '')")
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	rows, err := db.QueryContext(ctx,
		"SELECT "+translationColumns+" FROM translations"+whereSQL+" ORDER BY key, lang", args...)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()
	return scanTranslations(rows)
}

// groupClause builds the WHERE fragment for a namespace filter. The sentinel
// group selects keys without a dot; any other group matches "group." prefixes.
func groupClause(group string, nextArg func() string) (clause string, arg any, ok bool) {
	switch group {
	case "":
		return "", nil, false
	case model.GroupOther:
		return "key NOT LIKE '%.%'", nil, true
	default:
		return "key LIKE " + nextArg() + " || '.%'", group, true
	}
}

func queryDeleteTranslation(ctx context.Context, db executor, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM translations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDistinctKeys(ctx context.Context, db executor, filter model.KeyFilter) ([]string, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.MissingLang != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			"key NOT IN (SELECT key FROM translations WHERE lang = "+p+
				" AND value IS NOT NULL AND value != '')")
		args = append(args, filter.MissingLang)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(key ILIKE '%%' || %s || '%%' OR value ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	if clause, arg, ok := groupClause(filter.Group, nextArg); ok {
		whereClauses = append(whereClauses, clause)
		if arg != nil {
			args = append(args, arg)
		}
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	rows, err := db.QueryContext(ctx,
		"SELECT DISTINCT key FROM translations"+whereSQL+" ORDER BY key", args...)
	if err != nil {
		return nil, fmt.Errorf("distinct keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func queryDistinctGroups(ctx context.Context, db executor) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT
			CASE WHEN key LIKE '%.%' THEN split_part(key, '.', 1) ELSE '`+model.GroupOther+`' END AS group_name
		FROM translations
		ORDER BY group_name`)
	if err != nil {
		return nil, fmt.Errorf("distinct groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func queryListLanguages(ctx context.Context, db executor, activeOnly bool) ([]*model.Language, error) {
	q := `SELECT code, name, active FROM languages`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY code`

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var langs []*model.Language
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.Code, &l.Name, &l.Active); err != nil {
			return nil, err
		}
		langs = append(langs, &l)
	}
	return langs, rows.Err()
}

func queryUpsertLanguage(ctx context.Context, db executor, l *model.Language) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO languages (code, name, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = $2, active = $3`,
		l.Code, l.Name, l.Active,
	)
	return err
}
