package composables

import (
	"net/http"
	"strconv"
)

type PaginationParams struct {
	Page  int
	Limit int
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// UsePaginated reads page and limit from the query string. Page is clamped to
// at least 1 and limit to [1, MAX_PAGE_SIZE], defaulting to PAGE_SIZE.
func UsePaginated(r *http.Request) PaginationParams {
	conf := UseConfig(r.Context())
	return ClampPagination(
		GetLastQueryParam(r, "page"),
		GetLastQueryParam(r, "limit"),
		conf.PageSize,
		conf.MaxPageSize,
	)
}

func ClampPagination(rawPage, rawLimit string, defaultLimit, maxLimit int) PaginationParams {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return PaginationParams{Page: page, Limit: limit}
}
