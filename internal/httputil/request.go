package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"papertrail/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The cap leaves headroom above the upload limit for base64 expansion of
// embedded content. Field validation happens downstream in the services.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes*2)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
