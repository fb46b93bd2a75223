package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
)

// DefaultSessionCookie names the session cookie when Config leaves it empty.
const DefaultSessionCookie = "budget_session"

// Handler returns a payload for the success envelope or an error for the
// error envelope. The payload can set the status, message, meta and cookies
// by implementing StatusCode, Message, Meta or Cookies.
type Handler func(r *Request) (any, error)

// RevocationChecker reports whether a token ID has been revoked.
type RevocationChecker interface {
	Revoked(jti string) bool
}

type Config struct {
	Config     config.Config
	Instrument instrument.Instrumentation
	// UUID generates correlation IDs for requests that carry none.
	UUID uid.StringID
	JWT  jwt.JWT
	// Revocations is optional; when set, tokens it reports are rejected.
	Revocations RevocationChecker
	// SessionCookie defaults to DefaultSessionCookie.
	SessionCookie string
}

// Router is httprouter plus a middleware chain applied to every route.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// publicEndpoints are reachable without a session. A valid session is still
// attached to the request when present.
var publicEndpoints = map[string]map[string]struct{}{
	http.MethodGet: {
		"/":            {},
		"/health":      {},
		"/api/auth/me": {},
	},
	http.MethodPost: {
		"/api/auth/request-otp": {},
		"/api/auth/verify-otp":  {},
		"/api/auth/logout":      {},
	},
}

// NewRouter builds the router with the standard chain: recover, client IP,
// correlation ID, observability, maintenance and authentication.
func NewRouter(cfg Config) *Router {
	if cfg.Instrument == nil {
		cfg.Instrument = instrument.NewNoop()
	}
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = DefaultSessionCookie
	}

	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}
	hr.GET("/", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, map[string]string{"message": "Welcome to API GoBudget"}, http.StatusOK)
	})

	return &Router{
		hr: hr,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Config, cfg.Instrument),
			middlewareMaintenance(cfg.Config),
			middlewareAuthentication(authConfig{
				verifier:    cfg.JWT,
				revocations: cfg.Revocations,
				cookie:      cfg.SessionCookie,
				public:      publicEndpoints,
			}),
		},
	}
}

func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodGet, path, h, mws...)
}

func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodPost, path, h, mws...)
}

func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodDelete, path, h, mws...)
}

// GETRaw mounts a plain http.Handler that writes its own response.
func (r *Router) GETRaw(path string, h http.Handler, mws ...Middleware) {
	r.mount(http.MethodGet, path, h, mws)
}

// Handle mounts h behind the router chain followed by mws.
func (r *Router) Handle(method, path string, h Handler, mws ...Middleware) {
	r.mount(method, path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err == nil {
			writeSuccess(w, resp)
			return
		}
		if rec, ok := w.(interface{ SetError(error) }); ok {
			rec.SetError(err)
		}
		writeError(w, err)
	}), mws)
}

func (r *Router) mount(method, path string, h http.Handler, mws []Middleware) {
	chain := make([]Middleware, 0, len(r.mws)+len(mws))
	chain = append(chain, r.mws...)
	r.hr.Handler(method, path, Chain(h, append(chain, mws...)...))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}
