package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/richard-senior/barchart/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// Route is one entry of the route table.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler http.Handler
}

// NewRouter registers routes, each wrapped with request logging and panic
// recovery.
func NewRouter(routes []Route) *mux.Router {
	router := mux.NewRouter()
	for _, route := range routes {
		var handler http.Handler
		handler = route.Handler
		handler = recoverer(handler, route.Name)
		handler = requestLogger(handler, route.Name)

		router.
			Methods(route.Method).
			Path(route.Pattern).
			Name(route.Name).
			Handler(handler)
	}
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger tags the request with an id and logs it once the handler
// returns. A client supplied id is kept only if it is a UUID.
func requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		if supplied, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
			id = supplied.String()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		inner.ServeHTTP(rec, r)

		logger.Info("%s %s %s %d %s id=%s", r.Method, r.RequestURI, name, rec.status, time.Since(start), id)
	})
}

// recoverer keeps a panicking handler from taking the listener down.
func recoverer(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.Error("panic in %s: %v", name, v)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		inner.ServeHTTP(w, r)
	})
}
