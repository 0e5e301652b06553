// Copyright (c) 2026 Bigganboloy Project
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bigganboloy/bigganboloy/internal/middleware"
)

// maxRequestBody caps JSON request bodies. Post content is the largest
// payload and stays well under this.
const maxRequestBody = 1 << 20 // 1 MiB

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst. On failure it writes an
// invalid_input error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.WriteAPIError(w, http.StatusRequestEntityTooLarge,
				"invalid_input", "অনুরোধটি খুব বড়।", nil)
			return false
		}
		middleware.WriteAPIError(w, http.StatusBadRequest,
			"invalid_input", "অনুরোধটি বোঝা যায়নি।", nil)
		return false
	}
	// Reject trailing garbage after the JSON document.
	if dec.More() {
		middleware.WriteAPIError(w, http.StatusBadRequest,
			"invalid_input", "অনুরোধটি বোঝা যায়নি।", nil)
		return false
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return true
}

// writeInternalError logs the error and writes a generic 500 response.
// The underlying error never reaches the client.
func writeInternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = MsgGenericError
	}
	middleware.WriteAPIError(w, http.StatusInternalServerError, "internal", message, nil)
}

// writeNotFound writes a 404 response with the not_found code.
func writeNotFound(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusNotFound, "not_found", message, nil)
}

// writeInvalidInput writes a 400 response with the invalid_input code.
func writeInvalidInput(w http.ResponseWriter, message string, details map[string]string) {
	middleware.WriteAPIError(w, http.StatusBadRequest, "invalid_input", message, details)
}
