package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/megalai/backend/internal/api/handlers"
	"github.com/megalai/backend/internal/api/middleware"
	"github.com/megalai/backend/internal/audit"
	"github.com/megalai/backend/internal/auth"
	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/generate"
	"github.com/megalai/backend/internal/queue"
)

type Router struct {
	mux         *chi.Mux
	db          *pgxpool.Pool
	redis       *redis.Client
	cfg         *config.Config
	dir         *directory.Service
	tokens      *auth.TokenService
	revocations auth.RevocationStore
	authn       *auth.Middleware
	queue       *queue.Client
}

// NewRouter wires the service graph. revocations and qc may be nil-ish
// stand-ins (NopRevocations, nil queue) when Redis is not configured.
func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, revocations auth.RevocationStore, qc *queue.Client) *Router {
	dir := directory.NewService(db)
	tokens := auth.NewTokenService(cfg.Auth)
	return &Router{
		mux:         chi.NewRouter(),
		db:          db,
		redis:       rdb,
		cfg:         cfg,
		dir:         dir,
		tokens:      tokens,
		revocations: revocations,
		authn:       auth.NewMiddleware(tokens, dir),
		queue:       qc,
	}
}

// SeedDomains ensures the configured default allowed email domains
// exist before the server starts accepting registrations.
func (rt *Router) SeedDomains(ctx context.Context, domains []string) error {
	return rt.dir.SeedAllowedDomains(ctx, domains)
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	auditSvc := audit.NewService(rt.db)
	registry := generate.NewRegistry(rt.cfg.Generate)

	authH := handlers.NewAuthHandler(rt.dir, rt.tokens, rt.revocations, rt.queue, rt.cfg.Registration)

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/refresh", authH.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(rt.authn.Authenticate)
			r.Get("/me", authH.Me)
			r.Post("/logout", authH.Logout)
		})
	})

	// Everything below requires a valid access token.
	r.Group(func(r chi.Router) {
		r.Use(rt.authn.Authenticate)

		userH := handlers.NewUserHandler(rt.dir)
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userH.List)
			r.Get("/me", userH.Me)
		})

		orgH := handlers.NewOrganizationHandler(rt.dir, auditSvc)
		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", orgH.List)
			r.Post("/", orgH.Create)
			r.Get("/me", orgH.Mine)
			r.Put("/me", orgH.UpdateMine)
		})

		topicH := handlers.NewTopicHandler(rt.dir, auditSvc)
		r.Route("/topics", func(r chi.Router) {
			r.Get("/", topicH.List)
			r.Post("/", topicH.Create)
			r.Delete("/{id}", topicH.Delete)
		})

		settingsH := handlers.NewSettingsHandler(rt.dir)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/me", settingsH.Mine)
			r.Put("/me", settingsH.UpdateMine)
		})

		aiH := handlers.NewAIHandler(rt.dir, registry)
		r.Route("/ai", func(r chi.Router) {
			r.Post("/lesson", aiH.Lesson)
			r.Post("/quiz", aiH.Quiz)
			r.Post("/worksheet", aiH.Worksheet)
			r.Post("/rubric", aiH.Rubric)
			r.Post("/text-tool", aiH.TextTool)
		})

		adminH := handlers.NewAdminHandler(rt.dir, auditSvc, rt.queue)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/organizations", adminH.CreateOrganization)
			r.Get("/organizations", adminH.ListOrganizations)
			r.Post("/org-admins", adminH.CreateOrgAdmin)
			r.Post("/professors", adminH.CreateProfessor)
			r.Post("/students", adminH.CreateStudent)
			r.Get("/users", adminH.ListUsers)
			r.Get("/audit", adminH.AuditLogs)
		})
	})

	return r
}
