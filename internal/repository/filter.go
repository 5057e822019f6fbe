package repository

import (
	"strings"

	"github.com/mcpsquare/marketplace-api/internal/model"
)

// Pagination defaults and bounds for the list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListFilter narrows a listing query. The zero value matches everything.
// Category is an exact match; Search is a case-insensitive substring match
// across title, summary, category and tags, any of which may hit.
type ListFilter struct {
	Category string
	Search   string
}

func NewListFilter(category, search string) ListFilter {
	return ListFilter{Category: category, Search: search}
}

func (f ListFilter) IsEmpty() bool {
	return f.Category == "" && f.Search == ""
}

// Matches reports whether svc satisfies the filter. This is the in-memory
// equivalent of the SQL predicate the postgres repository builds.
func (f ListFilter) Matches(svc *model.Service) bool {
	if f.Category != "" && svc.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, field := range []string{svc.Title, svc.Summary, svc.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, tag := range svc.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// PageParams is the offset/count slice a repository applies to a listing.
type PageParams struct {
	Page  int
	Limit int
	Skip  int
	Take  int
}

// NewPageParams derives skip/take from a 1-based page number, falling back
// to DefaultPage/DefaultLimit for non-positive values.
func NewPageParams(page, limit int) PageParams {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return PageParams{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
		Take:  limit,
	}
}

// PageMeta is the pagination block returned alongside a page of services.
type PageMeta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

func NewPageMeta(page, limit, totalCount int) PageMeta {
	totalPages := (totalCount + limit - 1) / limit
	return PageMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
