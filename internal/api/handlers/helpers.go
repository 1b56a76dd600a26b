package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"nursery-locator/internal/api/dto"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/platform/obs"
	"nursery-locator/internal/ports"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed",
			"req_id", obs.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}})
}

// Map service errors to HTTP responses. Unknown errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, "session_not_found", "session not found")
	case errors.Is(err, domain.ErrInvalidCoordinates):
		writeError(w, r, http.StatusBadRequest, "invalid_coordinates", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"req_id", obs.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal", "internal error")
	}
}

type decodeOptions struct {
	// An empty body leaves the target untouched.
	allowEmpty bool
	// Browsers post the whole coords object, accuracy and all.
	allowUnknown bool
}

// Decode a single JSON object into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, opts decodeOptions) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	if !opts.allowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		if opts.allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		writeError(w, r, http.StatusBadRequest, "invalid_json", "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid_json", "body must contain only one JSON object")
		return false
	}
	return true
}

// Read lat/lon query parameters. ok is false when neither is given.
func parseCoordsQuery(r *http.Request) (c domain.Coordinates, ok bool, err error) {
	q := r.URL.Query()
	latStr, lonStr := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))

	if latStr == "" && lonStr == "" {
		return domain.Coordinates{}, false, nil
	}
	if latStr == "" || lonStr == "" {
		return domain.Coordinates{}, false, errors.New("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("lat: %q is not a number", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("lon: %q is not a number", lonStr)
	}

	c = domain.Coordinates{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, false, err
	}
	return c, true, nil
}

// NotFound and MethodNotAllowed keep router-level errors in the JSON envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not_found", "not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}
