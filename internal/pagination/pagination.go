package pagination

import (
	"strconv"
	"strings"
)

// Params selects one page of an ordered sequence.
type Params struct {
	Page    int // 1-indexed page number.
	PerPage int // Maximum records per page.
}

// FromQuery builds Params from a raw `page` query value. Non-numeric
// or out-of-range input degrades to the first page.
func FromQuery(raw string, perPage int) Params {
	page := 1
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		if parsed, errParse := strconv.Atoi(trimmed); errParse == nil && parsed > 0 {
			page = parsed
		}
	}
	if perPage < 1 {
		perPage = 1
	}
	return Params{Page: page, PerPage: perPage}
}

// Window is the offset/limit slice for one page, with its position in
// the full sequence.
type Window struct {
	Number   int   // Effective page number after clamping.
	NumPages int   // Total page count (at least 1).
	Offset   int   // Record offset of the page start.
	Limit    int   // Maximum records on the page.
	Total    int64 // Total record count.
}

// HasNext reports whether a later page exists.
func (w Window) HasNext() bool {
	return w.Number < w.NumPages
}

// HasPrevious reports whether an earlier page exists.
func (w Window) HasPrevious() bool {
	return w.Number > 1
}

// Paginate computes the window for page p over total records. Page k
// covers offset (k-1)*PerPage through min(k*PerPage, total)-1; a page
// beyond range clamps to the last page, and an empty sequence yields a
// single empty page.
func Paginate(total int64, p Params) Window {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = 1
	}

	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}

	return Window{
		Number:   page,
		NumPages: numPages,
		Offset:   (page - 1) * perPage,
		Limit:    perPage,
		Total:    total,
	}
}
