// Package pagination implements the page math and relative navigation
// links used by collection endpoints. All functions are pure; callers
// run the count and window queries themselves and no snapshot is
// guaranteed between the two.
package pagination

import (
	"fmt"
	"strconv"
)

// DefaultPageSize is the fixed window size for all paginated listings.
const DefaultPageSize = 10

// ParsePage parses a raw page query parameter. Missing or malformed
// values default to page 1, and the result is clamped to a minimum of
// 1. There is no upper clamp: a page past the end simply yields an
// empty window.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset returns the zero-based row offset for the given page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// TotalPages returns ceil(totalCount / pageSize); zero when the
// collection is empty.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// Links holds relative navigation paths for the pages surrounding the
// current one. Absent directions are omitted from the JSON encoding,
// so a single-page collection serializes as an empty object.
type Links struct {
	NextPage  string `json:"nextPage,omitempty"`
	LastPage  string `json:"lastPage,omitempty"`
	PrevPage  string `json:"prevPage,omitempty"`
	FirstPage string `json:"firstPage,omitempty"`
}

// NavLinks builds navigation links around the current page. basePath is
// the collection path carrying the filter (e.g.
// "/assignments/{id}/submissions"); the page number is appended as a
// query parameter. nextPage/lastPage are present iff pages remain
// ahead, prevPage/firstPage iff pages lie behind.
func NavLinks(basePath string, page, totalPages int) Links {
	var links Links
	if page < totalPages {
		links.NextPage = fmt.Sprintf("%s?page=%d", basePath, page+1)
		links.LastPage = fmt.Sprintf("%s?page=%d", basePath, totalPages)
	}
	if page > 1 {
		links.PrevPage = fmt.Sprintf("%s?page=%d", basePath, page-1)
		links.FirstPage = fmt.Sprintf("%s?page=1", basePath)
	}
	return links
}
