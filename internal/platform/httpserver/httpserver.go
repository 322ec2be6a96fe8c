package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Per-route deadlines come from the timeout
// middleware; the header timeout here only guards against connections
// that never finish sending headers.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
