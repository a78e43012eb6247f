package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stackleaf/todo/internal/todo/service"
	"github.com/stackleaf/todo/internal/todo/store"
	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/slogx"

	_ "github.com/stackleaf/todo/api/todo" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	AuthService  *service.AuthService
	TokenService *service.TokenService
	TodoService  *service.TodoService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTodos()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Todo Service API
//	@version		0.1.0
//	@description	A multi-user todo backend with credential login and short-lived
//	@description	JWT access tokens renewed via refresh tokens.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/register - strict rate limit (account creation)
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.RequireFields("username", "email", "password"),
		),
	)

	// POST /auth/login - strict rate limit (brute force prevention)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.RequireFields("identifier", "password"),
		),
	)

	// POST /auth/logout - stateless acknowledgment
	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/refresh-token - moderate limit; access tokens expire in
	// seconds so legitimate clients hit this often
	refreshHandler := &RefreshHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /auth/refresh-token",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTodos() {
	h := &TodosHandler{TodoService: r.TodoService}

	// All todo routes sit behind access-token verification and a lenient
	// per-user rate limit.
	secured := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.TokenService.Access),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /todos", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /todos/filter", secured(http.HandlerFunc(h.HandleFilter)))
	r.Mux.Handle("GET /todos/{id}", secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("POST /todos", secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /todos/{id}", secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("PATCH /todos/{id}", secured(http.HandlerFunc(h.HandlePatch)))
	r.Mux.Handle("DELETE /todos/{id}", secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
