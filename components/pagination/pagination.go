package pagination

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/intl"
)

type State struct {
	Page     int
	PageSize int
	Total    int
	// BaseURL is the list URL whose query is kept on every link.
	BaseURL string
	// Target, when set, makes links swap that element through htmx.
	Target string
}

func (s State) TotalPages() int {
	if s.PageSize <= 0 || s.Total <= 0 {
		return 1
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

func (s State) HasPrev() bool {
	return s.Page > 1
}

func (s State) HasNext() bool {
	return s.Page < s.TotalPages()
}

// URL returns BaseURL with the page parameter replaced.
func (s State) URL(page int) string {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "?page=" + strconv.Itoa(page)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// Pages returns the page numbers to show; 0 marks a gap.
func (s State) Pages() []int {
	total := s.TotalPages()
	var out []int
	last := 0
	for p := 1; p <= total; p++ {
		if p == 1 || p == total || (p >= s.Page-2 && p <= s.Page+2) {
			if last != 0 && p-last > 1 {
				out = append(out, 0)
			}
			out = append(out, p)
			last = p
		}
	}
	return out
}

func (s State) link(b *base.Writer, page int, label string, current bool) {
	class := "rounded px-3 py-1 text-sm hover:bg-gray-100"
	if current {
		class = "rounded bg-brand-600 px-3 py-1 text-sm text-white"
	}
	href := s.URL(page)
	b.Raw(`<a`).Attr("href", href).Attr("class", class)
	if current {
		b.Attr("aria-current", "page")
	}
	if s.Target != "" {
		b.Attr("hx-get", href).Attr("hx-target", s.Target).Attr("hx-swap", "outerHTML").Attr("hx-push-url", "true")
	}
	b.Raw(`>`).Text(label).Raw(`</a>`)
}

func Pagination(s State) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if s.TotalPages() <= 1 {
			return
		}
		b.Raw(`<nav class="mt-4 flex items-center justify-between" aria-label="pagination"><p class="text-sm text-gray-500">`).
			Text(intl.T(ctx, "Pagination.Total", strconv.Itoa(s.Total)+" total", map[string]interface{}{"Total": s.Total})).
			Raw(`</p><div class="flex items-center gap-1">`)
		if s.HasPrev() {
			s.link(b, s.Page-1, intl.T(ctx, "Pagination.Prev", "Previous"), false)
		}
		for _, p := range s.Pages() {
			if p == 0 {
				b.Raw(`<span class="px-2 text-gray-400">…</span>`)
				continue
			}
			s.link(b, p, strconv.Itoa(p), p == s.Page)
		}
		if s.HasNext() {
			s.link(b, s.Page+1, intl.T(ctx, "Pagination.Next", "Next"), false)
		}
		b.Raw(`</div></nav>`)
	})
}
