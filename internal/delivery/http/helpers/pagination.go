package helpers

import (
	"net/http"
	"strconv"

	"meetapp/internal/domain"
)

// DefaultPage is used when the page query parameter is missing or invalid.
const DefaultPage = 1

// ParsePagination reads the 1-based page number from the request query string
// and pairs it with the fixed page size of the listing endpoint. Invalid or
// missing values fall back to page 1.
func ParsePagination(r *http.Request, pageSize int) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}
