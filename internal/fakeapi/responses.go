package fakeapi

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError writes the API's error body. An empty message uses the
// default for status.
func writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	if message == "" {
		message = apierr.DefaultMessage(status)
	}
	writeJSON(w, status, errorBody{Code: code, Message: message, Errors: fields})
}

// writeValidationError turns a client-side validation failure into a 422.
func writeValidationError(w http.ResponseWriter, err error) {
	e := apierr.From(err)
	writeError(w, http.StatusUnprocessableEntity, apierr.CodeValidation, e.Message, e.FieldErrors)
}

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Request body is not valid JSON.", nil)
		return false
	}
	return true
}
