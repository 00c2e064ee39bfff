package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
)

// Bounds for the ?name= substring filter on list endpoints.
const (
	nameFilterMinLen = 3
	nameFilterMaxLen = 20
)

var errInvalidNameFilter = fmt.Errorf(
	"query parameter 'name' must be between %d and %d characters",
	nameFilterMinLen, nameFilterMaxLen,
)

// DecodeJSON decodes the request body into dst, rejecting unknown junk
// after the first JSON value.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second value in the body is malformed input.
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// getPathID extracts the {id} path parameter as a positive int64.
func getPathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// getNameFilter reads the optional ?name= query parameter, enforcing the
// 3-20 character bound when supplied. An absent parameter returns "".
func getNameFilter(r *http.Request) (string, error) {
	name := r.URL.Query().Get("name")
	if name == "" {
		return "", nil
	}
	// The bound is in characters, not bytes.
	if runes := utf8.RuneCountInString(name); runes < nameFilterMinLen || runes > nameFilterMaxLen {
		return "", errInvalidNameFilter
	}
	return name, nil
}

// getOptionalIDParam reads an optional positive-integer query parameter,
// returning nil when absent.
func getOptionalIDParam(r *http.Request, param string) (*int64, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("query parameter %q must be a positive integer", param)
	}
	return &id, nil
}
