package httpserver

import (
	"net/http"
	"time"
)

// New builds the service's HTTP server. Per-request deadlines are enforced
// by the router's timeout middleware, so only slow-header reads and idle
// keepalives are bounded here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
