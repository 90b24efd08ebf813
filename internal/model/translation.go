package model

import (
	"regexp"
	"strings"
	"time"
)

// GroupOther is the sentinel group that collects keys without a dot-delimited
// namespace. It is always present in group listings.
const GroupOther = "other"

// KeyPattern is the set of characters accepted in translation keys on import.
var KeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Translation is a single localized string, unique per (lang, key).
type Translation struct {
	ID        int64     `json:"id"`
	Lang      string    `json:"lang"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Readonly  bool      `json:"readonly"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Group returns the namespace this translation's key belongs to.
func (t *Translation) Group() string {
	return DeriveGroup(t.Key)
}

// DeriveGroup returns the substring before the first "." in key.
// Keys without a dot fall into the sentinel GroupOther bucket.
func DeriveGroup(key string) string {
	if i := strings.IndexByte(key, '.'); i > 0 {
		return key[:i]
	}
	return GroupOther
}

// SplitKey returns the group and the remainder of the key after the first
// dot. For bare keys the group is GroupOther and the item is the key itself.
func SplitKey(key string) (group, item string) {
	if i := strings.IndexByte(key, '.'); i > 0 && i < len(key)-1 {
		return key[:i], key[i+1:]
	}
	return GroupOther, key
}

// Grouped is the fully materialized translation set for one locale,
// keyed by namespace and then by item key.
type Grouped map[string]map[string]string

// Language is an entry in the locale registry.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// TranslationFilter narrows ListTranslations results. All fields are
// optional except Lang, which scopes the query to one locale when set.
type TranslationFilter struct {
	Lang        string // exact locale match
	Search      string // substring match on key or value
	Group       string // namespace filter; GroupOther selects bare keys
	MissingOnly bool   // only rows with a null or empty value
}

// KeyFilter narrows DistinctKeys results across all locales.
type KeyFilter struct {
	Search      string // substring match on key or value
	Group       string // namespace filter; GroupOther selects bare keys
	MissingLang string // keys absent or empty for this locale
}
