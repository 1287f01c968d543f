// Package handlers is the HTTP layer.
//
// Handlers stay thin: parse the request, call a service, write the result
// with the pkg response helpers. Every error goes through pkg.Error, which
// owns the status mapping.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/filmorate/pkg"
)

const maxBodyBytes = 1 << 20

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", pkg.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", pkg.ErrInvalidArgument, err)
	}
	return nil
}
