package shared

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/httpapi"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/toast"
)

// Responders render the full-page error views. The core module replaces the
// plain-text defaults with its templates.
var (
	NotFoundResponder = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
	ForbiddenResponder = func(w http.ResponseWriter, r *http.Request, permission string) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}
	ErrorPageResponder = func(w http.ResponseWriter, r *http.Request, status int, message string) {
		http.Error(w, message, status)
	}
)

const LogoutPath = "/logout"

// ErrorMessage returns the backend message carried by err, or the localized
// generic fallback.
func ErrorMessage(r *http.Request, err error) string {
	return apiclient.Message(err, intl.T(r.Context(), "Errors.Generic", "Something went wrong. Please try again."))
}

// HandleError maps a failed call to the response the browser expects:
// unauthorized ends the session, forbidden and not found render their pages,
// everything else surfaces the backend message as an error toast.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var forbidden *authz.ForbiddenError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		Redirect(w, r, LogoutURL(ReturnPath(r)))
	case errors.As(err, &forbidden):
		respondForbidden(w, r, forbidden.Permission, err)
	case errors.Is(err, apiclient.ErrForbidden), errors.Is(err, authz.ErrForbidden):
		respondForbidden(w, r, "", err)
	case errors.Is(err, apiclient.ErrNotFound), errors.Is(err, ErrInvalidID):
		if htmx.IsHxRequest(r) || httpapi.WantsJSON(r) {
			respondToast(w, r, http.StatusNotFound, err)
			return
		}
		NotFoundResponder(w, r)
	case errors.Is(err, apiclient.ErrValidation), errors.Is(err, apiclient.ErrConflict):
		respondToast(w, r, http.StatusUnprocessableEntity, err)
	default:
		respondToast(w, r, http.StatusBadGateway, err)
	}
}

func respondForbidden(w http.ResponseWriter, r *http.Request, permission string, err error) {
	if htmx.IsHxRequest(r) || httpapi.WantsJSON(r) {
		respondToast(w, r, http.StatusForbidden, err)
		return
	}
	ForbiddenResponder(w, r, permission)
}

func respondToast(w http.ResponseWriter, r *http.Request, status int, err error) {
	Reject(w, r, status, ErrorMessage(r, err))
}

// Reject answers a refused request with message: a JSON error, an error toast
// with nothing swapped, the error page, or a redirect back with a flash toast.
func Reject(w http.ResponseWriter, r *http.Request, status int, message string) {
	switch {
	case httpapi.WantsJSON(r):
		_ = WriteJSONError(w, status, http.StatusText(status), message)
	case htmx.IsHxRequest(r):
		toast.PushError(w, r, message)
		htmx.Reswap(w, "none")
		w.WriteHeader(status)
	case r.Method == http.MethodGet:
		ErrorPageResponder(w, r, status, message)
	default:
		toast.PushError(w, r, message)
		http.Redirect(w, r, SafeNext(localPath(r, r.Referer())), http.StatusSeeOther)
	}
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	return httpapi.WriteJSON(w, status, payload)
}

func WriteJSONError(w http.ResponseWriter, status int, code, message string) error {
	return httpapi.WriteError(w, status, code, message, nil)
}

// SoftFail reports a failed list fetch as an error toast so the caller can
// still render the page with an empty list. It returns false when err ended
// the request instead (expired token or access denied). On full page loads
// the toast travels in the returned request's context.
func SoftFail(w http.ResponseWriter, r *http.Request, err error) (*http.Request, bool) {
	var forbidden *authz.ForbiddenError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized),
		errors.As(err, &forbidden),
		errors.Is(err, apiclient.ErrForbidden),
		errors.Is(err, authz.ErrForbidden):
		HandleError(w, r, err)
		return r, false
	}
	t := toast.New(toast.Error, ErrorMessage(r, err))
	if htmx.IsHxRequest(r) {
		toast.Push(w, r, t)
		return r, true
	}
	pending, _ := r.Context().Value(constants.FlashToastsKey).([]toast.Toast)
	ctx := context.WithValue(r.Context(), constants.FlashToastsKey, append(pending, t))
	return r.WithContext(ctx), true
}
