package spotlight

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/intl"
)

func NewQuickLink(icon templ.Component, trKey, link string) *QuickLink {
	return &QuickLink{trKey: trKey, icon: icon, link: link}
}

// QuickLink is a navigable spotlight entry whose label is a locale message id.
type QuickLink struct {
	trKey      string
	icon       templ.Component
	link       string
	permission string
}

// RequirePermission hides the link from users lacking permission.
func (i *QuickLink) RequirePermission(permission string) *QuickLink {
	i.permission = permission
	return i
}

func (i *QuickLink) Href() string {
	return i.link
}

func (i *QuickLink) Label(ctx context.Context) string {
	return intl.T(ctx, i.trKey, i.trKey)
}

func (i *QuickLink) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, `<a class="spotlight-item flex items-center gap-2 px-3 py-2 rounded hover:bg-gray-100" href="`+templ.EscapeString(i.link)+`">`); err != nil {
		return err
	}
	if i.icon != nil {
		if err := i.icon.Render(ctx, w); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `<span>`+templ.EscapeString(i.Label(ctx))+`</span></a>`); err != nil {
		return err
	}
	return nil
}

func (i *QuickLink) allowed(ctx context.Context) bool {
	return i.permission == "" || composables.CanUser(ctx, i.permission)
}

type QuickLinks struct {
	mu    sync.RWMutex
	items []*QuickLink
}

func (ql *QuickLinks) Add(links ...*QuickLink) {
	ql.mu.Lock()
	defer ql.mu.Unlock()
	ql.items = append(ql.items, links...)
}

// Find ranks the links the current user may open against q. An empty query
// returns every allowed link in registration order.
func (ql *QuickLinks) Find(ctx context.Context, q string) []*QuickLink {
	links := ql.authorizedLinks(ctx)
	q = strings.TrimSpace(q)
	if len(links) == 0 || q == "" {
		return links
	}
	words := make([]string, len(links))
	for i, it := range links {
		words[i] = it.Label(ctx)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Sort(ranks)

	result := make([]*QuickLink, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, links[rank.OriginalIndex])
	}
	return result
}

func (ql *QuickLinks) authorizedLinks(ctx context.Context) []*QuickLink {
	ql.mu.RLock()
	defer ql.mu.RUnlock()
	filtered := make([]*QuickLink, 0, len(ql.items))
	for _, link := range ql.items {
		if link.allowed(ctx) {
			filtered = append(filtered, link)
		}
	}
	return filtered
}
