package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/diagnosis/sophies-tours/internal/http/response"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON body into v and answers 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, "request body is required")
		} else {
			response.BadRequest(w, "invalid json")
		}
		return false
	}
	return true
}

type messageResponse struct {
	Message string `json:"message"`
}
