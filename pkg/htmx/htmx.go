package htmx

import (
	"encoding/json"
	"net/http"
)

const (
	HeaderRequest    = "HX-Request"
	HeaderTarget     = "HX-Target"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderBoosted    = "HX-Boosted"
	HeaderTrigger    = "HX-Trigger"
	HeaderRedirect   = "HX-Redirect"
	HeaderRefresh    = "HX-Refresh"
	HeaderRetarget   = "HX-Retarget"
	HeaderReswap     = "HX-Reswap"
	HeaderPushURL    = "HX-Push-Url"
)

// EventCloseDialog closes the open <dialog> on the client.
const EventCloseDialog = "closeDialog"

func IsHxRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderBoosted) == "true"
}

func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

func CurrentURL(r *http.Request) string {
	return r.Header.Get(HeaderCurrentURL)
}

// SetTrigger adds an event to HX-Trigger, merging with events already set on
// the response. Events with the same name are collected into a list.
func SetTrigger(w http.ResponseWriter, event string, detail any) {
	events := map[string]any{}
	if existing := w.Header().Get(HeaderTrigger); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			events = map[string]any{existing: nil}
		}
	}
	if prev, ok := events[event]; ok && prev != nil && detail != nil {
		if list, isList := prev.([]any); isList {
			events[event] = append(list, detail)
		} else {
			events[event] = []any{prev, detail}
		}
	} else {
		events[event] = detail
	}
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set(HeaderTrigger, string(data))
}

func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
}

func Refresh(w http.ResponseWriter) {
	w.Header().Set(HeaderRefresh, "true")
}

func Retarget(w http.ResponseWriter, selector string) {
	w.Header().Set(HeaderRetarget, selector)
}

func Reswap(w http.ResponseWriter, swap string) {
	w.Header().Set(HeaderReswap, swap)
}

func PushURL(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderPushURL, url)
}
