package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/config"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/handlers"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/metrics"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/middleware"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/service"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

func New(log zerolog.Logger, sessions repository.SessionRepository, cfg config.Config) (http.Handler, error) {
	renderer, err := views.New(log, cfg.Env == "dev")
	if err != nil {
		return nil, err
	}
	mgr := session.NewManager(sessions, session.Options{
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
		Secure:       cfg.CookieSecure,
		Log:          log,
		RefreshEvery: cfg.SessionRefresh,
	})
	api := apiclient.New(apiclient.Config{
		BaseURL:        cfg.APIBase(),
		Timeout:        cfg.UpstreamTimeout,
		Tokens:         apiclient.TokenFunc(session.Token),
		OnUnauthorized: mgr.DestroyContext,
		Log:            log,
	})
	base := &handlers.Base{
		API:        api,
		Sessions:   mgr,
		Views:      renderer,
		Forms:      forms.NewValidator(),
		Log:        log,
		StorageURL: cfg.StorageURL,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(httprate.Limit(200, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			utils.Error(w, http.StatusTooManyRequests, "too many requests")
		}),
	))
	r.Use(middleware.WithSession(log, mgr, api))

	// Health
	r.Get("/healthz", handlers.Health())
	r.Handle("/metrics", metrics.Handler())

	// Handlers
	auth := handlers.NewAuthHTTP(base, service.NewAuthService(api, mgr, log))
	portal := handlers.NewPortalHTTP(base)
	dash := handlers.NewDashboardHTTP(base)
	th := handlers.NewTicketHTTP(base)
	uh := handlers.NewUserHTTP(base)
	rh := handlers.NewRoleHTTP(base)
	mh := handlers.NewMenuHTTP(base)
	ah := handlers.NewAreaHTTP(base)
	rep := handlers.NewReportsHTTP(base)
	audit := handlers.NewAuditHTTP(base)

	limit := func(h http.Handler) http.Handler { return h }
	if cfg.PortalRateLimit > 0 {
		limit = httprate.Limit(cfg.PortalRateLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				renderer.HTML(w, http.StatusTooManyRequests, "error.html", views.Data{
					"status":  http.StatusTooManyRequests,
					"message": "Too many attempts, please wait a minute and try again",
				})
			}),
		)
	}

	// Public
	r.Get("/", portal.Landing())
	r.Route("/portal", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.Origin},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
		}))
		r.Get("/create-ticket", portal.CreatePage())
		r.With(limit).Post("/create-ticket", portal.Create())
		r.Get("/search-ticket", portal.SearchPage())
		r.With(limit).Post("/search-ticket", portal.Search())
	})
	r.Get("/login", auth.LoginPage())
	r.With(limit).Post("/login", auth.Login())
	r.Post("/logout", auth.Logout())

	// Console
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Get("/dashboard", dash.Show())

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", th.List())
			r.Get("/new", th.NewPage())
			r.Post("/new", th.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", th.Show())
				r.Post("/comments", th.Comment())
				r.Group(func(r chi.Router) {
					r.Use(middleware.DenyRequesters)
					r.Post("/assign", th.Assign())
					r.Post("/escalate", th.Escalate())
					r.Post("/status", th.UpdateStatus())
					r.Post("/close", th.Close())
				})
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", rep.Page())
			r.Get("/{key}/download", rep.Download())
			r.Post("/{key}/export", rep.Export())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", uh.List())
			r.Post("/users", uh.Create())
			r.Post("/users/{id}", uh.Update())
			r.Post("/users/{id}/toggle-status", uh.ToggleStatus())
			r.Post("/users/{id}/delete", uh.Delete())
			r.Post("/users/{id}/role", uh.AssignRole())
			r.Get("/user-permissions/{id}", uh.Permissions())
			r.Post("/user-permissions/{id}/toggle", uh.TogglePermission())

			r.Get("/roles-permissions", rh.Page())
			r.Post("/roles-permissions/{id}", rh.SavePermissions())
			r.Post("/roles", rh.CreateRole())
			r.Post("/permissions", rh.CreatePermission())

			r.Get("/menu", mh.Page())
			r.Post("/menu/items", mh.CreateItem())
			r.Post("/menu/{id}", mh.Save())

			r.Get("/areas", ah.List())
			r.Post("/areas", ah.Create())
			r.Post("/areas/{id}", ah.Update())
			r.Post("/areas/{id}/delete", ah.Delete())

			r.Get("/reports-config", rep.ConfigPage())
			r.Post("/reports-config/{id}", rep.SaveConfig())

			r.Get("/audit-log", audit.List())
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		renderer.HTML(w, http.StatusNotFound, "error.html", views.Data{
			"status":  http.StatusNotFound,
			"message": "Page not found",
		})
	})

	return r, nil
}
