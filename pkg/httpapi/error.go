package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the JSON error body served by the UI's own JSON endpoints.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// DataEnvelope mirrors the backend's {success, data, message} shape.
type DataEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, &DataEnvelope{Success: true, Data: data})
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(r *http.Request) bool {
	for _, v := range r.Header.Values("Accept") {
		if containsFold(v, "application/json") {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], sub) {
			return true
		}
	}
	return false
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
