package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/akinalp/filmorate/pkg"
	log "github.com/sirupsen/logrus"
)

// Recover turns a handler panic into a 500 answer.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.WithFields(log.Fields{
				"component":  "http",
				"request_id": RequestIDFrom(r.Context()),
				"panic":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			}).Error("handler panicked")

			pkg.Error(w, fmt.Errorf("%w: panic serving %s", pkg.ErrInternal, r.URL.Path))
		}()

		next.ServeHTTP(w, r)
	})
}
