package logutil

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	key byte
)

var (
	loggerKey = key(1)
)

func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetOrDefault(ctx context.Context) zerolog.Logger {
	v := ctx.Value(loggerKey)
	if v == nil {
		return log.Logger
	}
	return v.(zerolog.Logger)
}

// WithRequest returns r with a request-scoped logger bound to its
// context, stamped with the method and path of the call.
func WithRequest(r *http.Request, base zerolog.Logger) *http.Request {
	logger := base.With().
		Str("http.method", r.Method).
		Str("http.path", r.URL.Path).
		Logger()
	return r.WithContext(WithLogger(r.Context(), logger))
}
