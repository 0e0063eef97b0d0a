// Package router adapts julienschmidt/httprouter to handlers that return a
// value or an error, and renders both as the {success, message, ...} JSON
// envelope.
package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/jwt"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
)

// Handler returns the response body or an error.
type Handler func(r *Request) (any, error)

// Config holds the router dependencies.
type Config struct {
	// Config feeds the maintenance switch and the log masking fields.
	Config config.Config
	// UUID generates correlation ids for requests that arrive without one.
	UUID uid.StringID
	// JWT verifies bearer tokens on non-public routes.
	JWT jwt.JWT
	// Instrument provides the tracer and meter for every request.
	Instrument instrument.Instrumentation
}

// Router is an http.Handler serving Handler routes.
type Router struct {
	hr     *httprouter.Router
	mws    []Middleware
	public map[string]map[string]struct{}
}

// NewRouter installs the global middleware chain. Every route requires a
// bearer token unless it is registered through PublicGET or PublicPOST.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
	}
	hr.NotFound = Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, failure("Endpoint not found", nil))
	}), middlewareCorrelationID(cfg.UUID))
	hr.MethodNotAllowed = Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, failure("Method not allowed", nil))
	}), middlewareCorrelationID(cfg.UUID))

	ro := &Router{
		hr:     hr,
		public: map[string]map[string]struct{}{},
	}

	ro.mws = []Middleware{
		middlewareRecoverer,
		middlewareIP,
		middlewareCorrelationID(cfg.UUID),
		middlewareObservability(cfg.Config, cfg.Instrument),
		middlewareMaintenance(cfg.Config),
		middlewareAuthentication(cfg.JWT, ro.isPublic),
	}

	ro.PublicGET("/health", func(*Request) (any, error) {
		return Message("ok"), nil
	})

	return ro
}

// GET registers an authenticated GET route.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodGet, path, h, mws)
}

// POST registers an authenticated POST route.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPost, path, h, mws)
}

// PublicGET registers a GET route that skips authentication.
func (r *Router) PublicGET(path string, h Handler, mws ...Middleware) {
	r.markPublic(http.MethodGet, path)
	r.handle(http.MethodGet, path, h, mws)
}

// PublicPOST registers a POST route that skips authentication.
func (r *Router) PublicPOST(path string, h Handler, mws ...Middleware) {
	r.markPublic(http.MethodPost, path)
	r.handle(http.MethodPost, path, h, mws)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func (r *Router) markPublic(method, path string) {
	if r.public[method] == nil {
		r.public[method] = map[string]struct{}{}
	}
	r.public[method][path] = struct{}{}
}

func (r *Router) isPublic(method, path string) bool {
	_, ok := r.public[method][path]
	return ok
}

func (r *Router) handle(method, path string, h Handler, mws []Middleware) {
	endpoint := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err != nil {
			if rec, ok := w.(interface{ SetError(error) }); ok {
				rec.SetError(err)
			}
			writeError(w, err)
			return
		}

		writeSuccess(w, resp)
	})

	chain := append(append([]Middleware{}, r.mws...), mws...)
	r.hr.Handler(method, path, Chain(endpoint, chain...))
}
