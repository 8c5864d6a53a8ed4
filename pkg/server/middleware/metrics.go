package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type RequestObserver interface {
	ObserveRequest(method, route string, status int)
}

// Metrics reports each request under its route pattern, so path parameters
// don't explode label cardinality.
func Metrics(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)

			route := "unmatched"
			if rctx := chi.RouteContext(req.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			switch {
			case status == 0 && websocket.IsWebSocketUpgrade(req):
				// the upgrader hijacked the connection after a 101 handshake
				status = http.StatusSwitchingProtocols
			case status == 0:
				status = http.StatusOK
			}
			observer.ObserveRequest(req.Method, route, status)
		})
	}
}
