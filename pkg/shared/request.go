package shared

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/pkg/htmx"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID reads the positive integer path variable "id".
func ParseID(r *http.Request) (int64, error) {
	return ParseIDVar(r, "id")
}

func ParseIDVar(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(ErrInvalidID, "%s=%q", name, raw)
	}
	return id, nil
}

// SafeNext returns next when it is a local path, else "/". The login and
// logout pages are never a destination.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if strings.HasPrefix(next, "/login") || strings.HasPrefix(next, LogoutPath) {
		return "/"
	}
	return next
}

// localPath returns the path and query of raw when it names r's own host.
func localPath(r *http.Request, raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return ""
	}
	return u.RequestURI()
}

// ReturnPath is the page the user was on when r was sent: the htmx current
// URL, the requested page for plain GETs, else a same-origin Referer.
func ReturnPath(r *http.Request) string {
	if htmx.IsHxRequest(r) {
		if p := localPath(r, htmx.CurrentURL(r)); p != "" {
			return SafeNext(p)
		}
	}
	if r.Method == http.MethodGet {
		return SafeNext(r.URL.RequestURI())
	}
	return SafeNext(localPath(r, r.Referer()))
}

// LogoutURL ends the session and comes back to next after signing in again.
func LogoutURL(next string) string {
	next = SafeNext(next)
	if next == "/" {
		return LogoutPath
	}
	return LogoutPath + "?next=" + url.QueryEscape(next)
}

// Redirect sends the browser to path, through HX-Redirect for htmx requests.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}
