package toast

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/worktrack/worktrack/pkg/htmx"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

const (
	// Event is the HX-Trigger event the toast container listens for.
	Event      = "showToast"
	cookieName = "flash_toasts"
)

type Toast struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func New(kind Kind, message string) Toast {
	return Toast{ID: uuid.NewString(), Kind: kind, Message: message}
}

// Push delivers t with the current response. htmx requests get it through
// HX-Trigger; full page loads read it back from a flash cookie.
func Push(w http.ResponseWriter, r *http.Request, t Toast) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if htmx.IsHxRequest(r) {
		htmx.SetTrigger(w, Event, t)
		return
	}
	pending := fromCookie(r)
	pending = append(pending, t)
	data, err := json.Marshal(pending)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

func PushSuccess(w http.ResponseWriter, r *http.Request, message string) {
	Push(w, r, New(Success, message))
}

func PushError(w http.ResponseWriter, r *http.Request, message string) {
	Push(w, r, New(Error, message))
}

// Pop returns the toasts carried by the flash cookie and clears it.
func Pop(w http.ResponseWriter, r *http.Request) []Toast {
	toasts := fromCookie(r)
	if len(toasts) == 0 {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Path: "/", MaxAge: -1, Expires: time.Unix(1, 0)})
	return toasts
}

func fromCookie(r *http.Request) []Toast {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var toasts []Toast
	if err := json.Unmarshal(data, &toasts); err != nil {
		return nil
	}
	return toasts
}
