// Package pagination holds the page request/response contract shared by the
// v2 listing endpoints.
package pagination

import "errors"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

var (
	ErrPageNumber = errors.New("pageNumber deve ser maior ou igual a 1")
	ErrPageSize   = errors.New("pageSize deve estar entre 1 e 100")
)

// Request carries 1-based page coordinates of a listing call.
type Request struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Validate enforces the strict contract for programmatic callers:
// pageNumber >= 1 and pageSize within [1, MaxPageSize].
func (r Request) Validate() error {
	if r.PageNumber < 1 {
		return ErrPageNumber
	}
	if r.PageSize < 1 || r.PageSize > MaxPageSize {
		return ErrPageSize
	}
	return nil
}

// Offset converts the page coordinates into a row offset.
func (r Request) Offset() int {
	return (r.PageNumber - 1) * r.PageSize
}

// Normalize applies the lenient query-string rules: non-positive or missing
// values fall back to the defaults and an oversized pageSize is silently
// clamped to MaxPageSize.
func Normalize(pageNumber, pageSize int) Request {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Request{PageNumber: pageNumber, PageSize: pageSize}
}

// Page is the envelope returned by paginated listings.
type Page[T any] struct {
	Data       []T   `json:"data"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// TotalPages computes ceil(totalCount/pageSize).
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}

// NewPage assembles the envelope for one page of results. A nil data slice
// becomes an empty one so the JSON field serializes as [] instead of null.
func NewPage[T any](data []T, req Request, totalCount int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
		TotalCount: totalCount,
		TotalPages: TotalPages(totalCount, req.PageSize),
	}
}
