package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/surajbi2/secureIn-backend/pkg/utils"
)

// PanicRecovery converts handler panics into 500 responses so a single bad
// request cannot bring down the gate API for every scanner on campus.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[HTTP] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
