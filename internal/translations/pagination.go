package translations

// DefaultPerPage is the page size used when the caller does not pick one.
const DefaultPerPage = 10

// maxSteps bounds the rendered pagination control: prev and next, the first
// and last page, up to two ellipses, and a numeric window around the current
// page. windowDelta is sized so the control never exceeds maxSteps entries.
const (
	maxSteps    = 15
	windowDelta = (maxSteps - 7) / 2
)

// Step is one entry in the pagination control.
type Step struct {
	Type    string `json:"type"` // "prev", "page", "ellipsis", "next"
	Page    int    `json:"page,omitempty"`
	Active  bool   `json:"active,omitempty"`
	Enabled bool   `json:"enabled"`
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Total       int    `json:"total"`
	PerPage     int    `json:"per_page"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	Steps       []Step `json:"steps"`
}

// paginate computes page bounds from the result size. An out-of-range page is
// clamped into [1, lastPage] rather than rejected, and an empty result set
// still yields a single valid page.
func paginate(total, perPage, page int) Pagination {
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	return Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
		Steps:       steps(page, lastPage),
	}
}

// steps builds the bounded control. Page 1 and the last page are always
// present; the numeric window floats around the current page with ellipses
// marking elided ranges. With a single page only prev, page 1, and next
// remain, both arrows disabled.
func steps(current, last int) []Step {
	out := make([]Step, 0, maxSteps)

	out = append(out, Step{Type: "prev", Page: current - 1, Enabled: current > 1})
	out = append(out, Step{Type: "page", Page: 1, Active: current == 1, Enabled: true})

	if last > 1 {
		from := current - windowDelta
		if from < 2 {
			from = 2
		}
		to := current + windowDelta
		if to > last-1 {
			to = last - 1
		}

		if from > 2 {
			out = append(out, Step{Type: "ellipsis"})
		}
		for p := from; p <= to; p++ {
			out = append(out, Step{Type: "page", Page: p, Active: p == current, Enabled: true})
		}
		if to < last-1 {
			out = append(out, Step{Type: "ellipsis"})
		}

		out = append(out, Step{Type: "page", Page: last, Active: current == last, Enabled: true})
	}

	out = append(out, Step{Type: "next", Page: current + 1, Enabled: current < last})
	return out
}
