package api

import (
	"net/http"
	"strconv"
)

const defaultPageSize = 6

// pageParams reads `page` and `limit` query parameters. The page size
// defaults to 6 and is clamped to at least 1; the page number starts at 1.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	return limit, (page - 1) * limit
}
