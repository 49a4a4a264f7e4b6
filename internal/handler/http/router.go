package http

import (
	"log/slog"
	"os"

	"github.com/Bee-255/keu-backend-go/internal/config"
	"github.com/Bee-255/keu-backend-go/internal/handler/http/middleware"
	"github.com/Bee-255/keu-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, payrollHandler PayrollHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "keu-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/batches", func(r chi.Router) {
					r.Get("/", payrollHandler.List)
					r.Post("/import", payrollHandler.Import)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetByID)
						r.Post("/approve", payrollHandler.Approve)
						r.Delete("/", payrollHandler.Delete)
						r.Put("/lines/{lineId}", payrollHandler.UpdateLineItem)
					})
				})

				r.Route("/exports", func(r chi.Router) {
					r.Post("/bank-transfer", payrollHandler.ExportBankTransfer)
					r.Post("/cash", payrollHandler.ExportCash)
					r.Post("/register", payrollHandler.ExportRegister)
				})

				r.Get("/employees", employeeHandler.List)
			})
		})
	})

	return r
}
