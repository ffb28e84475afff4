package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

// NewRouter wires the note store and identity provider endpoints.
func NewRouter(cfg Config, db *gorm.DB, jwtSvc *JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: cfg.CORSAllowCredentials,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &AuthHandler{DB: db, JWT: jwtSvc, ReauthWindow: cfg.ReauthWindow}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)
	r.With(RequireAuth(jwtSvc)).Delete("/auth/account", ah.DeleteAccount)

	nh := &NoteHandler{DB: db}
	r.Route("/notes", func(r chi.Router) {
		r.Use(RequireAuth(jwtSvc))

		r.Get("/", nh.List)
		r.Post("/", nh.Create)
		r.Get("/{id}", nh.Get)
		r.Put("/{id}", nh.Update)
		r.Delete("/{id}", nh.Delete)
	})

	return r
}
