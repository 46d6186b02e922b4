// Package httputil holds the response helpers shared by the HTTP transport.
package httputil

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ContentTypeJSON is the media type of every JSON body the server writes.
const ContentTypeJSON = "application/json"

// WriteJSON writes v as the response body with the given status code.
// A nil v writes headers only.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if v == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// MethodNotAllowed rejects the request and advertises the methods the
// endpoint accepts in the Allow header.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
