package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/rajasreeit/crm-backend-go/internal/handler/http/middleware"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env      string
	LogLevel slog.Level
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	punchHandler PunchHandler,
	employeeHandler EmployeeHandler,
	leaveHandler LeaveHandler,
	enquiryHandler EnquiryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crm-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin/register", authHandler.RegisterAdmin)
			r.Post("/admin/login", authHandler.LoginAdmin)
			r.Post("/employee/login", authHandler.LoginEmployee)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employee", func(r chi.Router) {
				r.Post("/punch", punchHandler.Punch)
				r.Get("/punch-activities", punchHandler.ListMine)

				r.Route("/leaves", func(r chi.Router) {
					r.Post("/", leaveHandler.Apply)
					r.Get("/", leaveHandler.ListMine)
				})

				r.Route("/enquiries", func(r chi.Router) {
					r.Post("/", enquiryHandler.Create)
					r.Get("/", enquiryHandler.ListMine)
				})
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Put("/password", authHandler.ChangePassword)

				r.Route("/punch", func(r chi.Router) {
					r.Get("/all", punchHandler.ListAll)
					r.Get("/{id}", punchHandler.Get)
					r.Put("/{id}", punchHandler.Update)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Post("/", employeeHandler.Create)
					r.Get("/", employeeHandler.List)
					r.Get("/{id}", employeeHandler.Get)
				})

				r.Route("/leaves", func(r chi.Router) {
					r.Get("/", leaveHandler.ListByStatus)
					r.Put("/{id}/status", leaveHandler.UpdateStatus)
				})

				r.Route("/enquiries", func(r chi.Router) {
					r.Get("/", enquiryHandler.ListAll)
					r.Delete("/{id}", enquiryHandler.Delete)
				})
			})
		})
	})
	return r
}
