package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/reamslin/messagely/internal/logutil"
)

// writeJSON renders v as the response body. GET responses carry an ETag
// derived from the encoded body, and a matching If-None-Match short
// circuits into 304 without resending the payload.
func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if r.Method == http.MethodGet {
		etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(buf))
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

// internalError logs the failure with its full cause and answers with
// an opaque 500, store and signing details never reach the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logutil.GetOrDefault(r.Context())
	logger.Error().Err(err).Msg("Request failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
