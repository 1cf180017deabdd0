package apiclient

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query builds list filters. Zero values are skipped.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Page(page, limit int) *Query {
	if page > 0 {
		q.values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.values.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (q *Query) String(key, value string) *Query {
	if v := strings.TrimSpace(value); v != "" {
		q.values.Set(key, v)
	}
	return q
}

func (q *Query) Int(key string, value int64) *Query {
	if value != 0 {
		q.values.Set(key, strconv.FormatInt(value, 10))
	}
	return q
}

func (q *Query) Date(key string, value time.Time) *Query {
	if !value.IsZero() {
		q.values.Set(key, value.Format("2006-01-02"))
	}
	return q
}

func (q *Query) Values() url.Values {
	if q == nil {
		return nil
	}
	return q.values
}
