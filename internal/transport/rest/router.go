package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/document-management/internal/access"
	"github.com/frahmantamala/document-management/internal/auth"
	"github.com/frahmantamala/document-management/internal/document"
	"github.com/frahmantamala/document-management/internal/tag"
	"github.com/frahmantamala/document-management/internal/transport/middleware"
	"github.com/frahmantamala/document-management/internal/transport/swagger"
	"github.com/frahmantamala/document-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, storage StoragePinger, authHandler *auth.Handler, userHandler *user.Handler, documentHandler *document.Handler, tagHandler *tag.Handler, accessHandler *access.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, storage)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/register", authHandler.Register)
			})
		}

		// Public tag listing (no auth required)
		if tagHandler != nil {
			r.Get("/tags", tagHandler.GetTags)
		}

		if authHandler != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if userHandler != nil {
					pr.Route("/users/me", func(ur chi.Router) {
						ur.Get("/", userHandler.GetCurrentUser)
						ur.Patch("/", userHandler.UpdateProfile)
						ur.Post("/password", userHandler.UpdatePassword)
					})
				}

				if tagHandler != nil {
					pr.Post("/tags", tagHandler.CreateTag)
				}

				if documentHandler != nil {
					pr.Route("/documents", func(dr chi.Router) {
						dr.Post("/", documentHandler.CreateDocument)
						dr.Get("/", documentHandler.ListDocuments)
						dr.Get("/{id}", documentHandler.GetDocument)
						dr.Post("/{id}/versions", documentHandler.AddVersion)
						dr.Get("/{id}/versions", documentHandler.ListVersions)
						dr.Put("/{id}/tags/{tagID}", documentHandler.AttachTag)
						dr.Delete("/{id}/tags/{tagID}", documentHandler.DetachTag)
						dr.Post("/{id}/access/users", documentHandler.GrantUserAccess)
						dr.Post("/{id}/access/departments", documentHandler.GrantDepartmentAccess)
					})
				}

				// Access-control administration
				if accessHandler != nil {
					pr.Group(func(ar chi.Router) {
						ar.Use(middleware.RequireAdmin())

						ar.Route("/departments", func(sr chi.Router) {
							sr.Post("/", accessHandler.CreateDepartment)
							sr.Get("/", accessHandler.ListDepartments)
							sr.Post("/{id}/users", accessHandler.AddDepartmentMember)
						})

						ar.Route("/roles", func(sr chi.Router) {
							sr.Post("/", accessHandler.CreateRole)
							sr.Get("/", accessHandler.ListRoles)
							sr.Post("/{id}/permissions", accessHandler.AttachPermission)
						})

						ar.Route("/permissions", func(sr chi.Router) {
							sr.Post("/", accessHandler.CreatePermission)
							sr.Get("/", accessHandler.ListPermissions)
						})

						ar.Post("/users/{id}/roles", accessHandler.AssignRole)
					})
				}
			})
		}
	})
}
