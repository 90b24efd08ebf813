package translations

import (
	"context"

	"github.com/simfra/lingod/internal/model"
)

// PageParams filters and pages the admin listing.
type PageParams struct {
	Lang    string
	Search  string
	Group   string
	Missing bool
	Page    int
	PerPage int
}

// Page is one page of the admin listing. Items covers every key in the page
// window of the full key universe: keys with no row for the selected locale
// appear as unsaved placeholders (id 0, empty value) so the caller sees the
// complete key set, not just the translated subset.
type Page struct {
	Lang       string               `json:"lang"`
	Items      []*model.Translation `json:"items"`
	Groups     []string             `json:"groups"`
	Languages  []*model.Language    `json:"languages"`
	Pagination Pagination           `json:"pagination"`
}

// ListPage assembles the admin listing: the locale registry, the group set,
// the paged key universe under the current filters, and the selected
// locale's values joined onto it.
func (s *Service) ListPage(ctx context.Context, p PageParams) (*Page, error) {
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}

	langs, err := s.store.ListLanguages(ctx, false)
	if err != nil {
		return nil, err
	}

	groups, err := s.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	keyFilter := model.KeyFilter{Search: p.Search, Group: p.Group}
	if p.Missing {
		keyFilter.MissingLang = p.Lang
	}
	keys, err := s.store.DistinctKeys(ctx, keyFilter)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListTranslations(ctx, model.TranslationFilter{
		Lang:        p.Lang,
		Search:      p.Search,
		Group:       p.Group,
		MissingOnly: p.Missing,
	})
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*model.Translation, len(rows))
	for _, t := range rows {
		byKey[t.Key] = t
	}

	pg := paginate(len(keys), p.PerPage, p.Page)
	start := (pg.CurrentPage - 1) * pg.PerPage
	end := start + pg.PerPage
	if start > len(keys) {
		start = len(keys)
	}
	if end > len(keys) {
		end = len(keys)
	}

	items := make([]*model.Translation, 0, end-start)
	for _, key := range keys[start:end] {
		if t, ok := byKey[key]; ok {
			items = append(items, t)
			continue
		}
		items = append(items, &model.Translation{Lang: p.Lang, Key: key})
	}

	return &Page{
		Lang:       p.Lang,
		Items:      items,
		Groups:     groups,
		Languages:  langs,
		Pagination: pg,
	}, nil
}
