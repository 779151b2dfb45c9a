package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
)

type RouterOptions struct {
	// Timeout bounds each request; zero disables it.
	Timeout time.Duration
	// AccessLog receives Apache style access lines when non-nil.
	AccessLog io.Writer
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleInfo)
	r.Get("/health", h.handleHealth)
	r.Post("/predict", h.handlePredict)
}

// NewRouter builds the full HTTP stack: request ids, panic recovery, CORS for
// any origin and optional access logging.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Recoverer(h.logger()))
	if opts.Timeout > 0 {
		r.Use(middleware.Timeout(opts.Timeout))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
	})
	h.RegisterRoutes(r)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
	var out http.Handler = cors(r)
	if opts.AccessLog != nil {
		out = handlers.LoggingHandler(opts.AccessLog, out)
	}
	return out
}
