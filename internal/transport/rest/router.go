package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/internal/department"
	"github.com/rodrigoluft/rh-backoffice/internal/employee"
	"github.com/rodrigoluft/rh-backoffice/internal/transport"
	"github.com/rodrigoluft/rh-backoffice/internal/transport/middleware"
	"github.com/rodrigoluft/rh-backoffice/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, departmentHandler *department.Handler, employeeHandler *employee.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	base := transport.NewBaseHandler(logger)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if cfg.Observability.Metrics.Enabled {
		router.Use(middleware.Metrics())
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	router.Route("/api", func(api chi.Router) {
		api.Route("/v1", func(r chi.Router) {
			// Health check routes
			r.Get("/health", healthHandler.healthCheckHandler)
			r.Get("/ping", healthHandler.pingHandler)

			r.Route("/departamento", func(dr chi.Router) {
				dr.Get("/", departmentHandler.GetDepartments)
				dr.Post("/", departmentHandler.CreateDepartment)
				dr.Get("/{id}", departmentHandler.GetDepartment)
				dr.Put("/{id}", departmentHandler.UpdateDepartment)
				dr.Delete("/{id}", departmentHandler.DeleteDepartment)
			})

			r.Route("/funcionario", func(fr chi.Router) {
				fr.Get("/", employeeHandler.GetEmployees)
				fr.Post("/", employeeHandler.CreateEmployee)
				fr.Get("/{id}", employeeHandler.GetEmployee)
				fr.Put("/{id}", employeeHandler.UpdateEmployee)
				fr.Delete("/{id}", employeeHandler.DeleteEmployee)
			})
		})

		api.Route("/v2", func(r chi.Router) {
			r.Route("/departamento", func(dr chi.Router) {
				dr.Get("/", departmentHandler.GetDepartmentsPaged)
				dr.Post("/", departmentHandler.CreateDepartment)
				dr.Get("/ativos", departmentHandler.GetActiveDepartments)
				dr.Get("/nome/{nome}", departmentHandler.GetDepartmentByName)
				dr.Get("/{id}", departmentHandler.GetDepartment)
				dr.Put("/{id}", departmentHandler.UpdateDepartment)
				dr.Patch("/{id}", departmentHandler.PatchDepartment)
				dr.Delete("/{id}", departmentHandler.DeleteDepartment)
			})

			r.Route("/funcionario", func(fr chi.Router) {
				fr.Get("/", employeeHandler.GetEmployeesPaged)
				fr.Post("/", employeeHandler.CreateEmployee)
				fr.Get("/ativos", employeeHandler.GetActiveEmployees)
				fr.Get("/relatorio", employeeHandler.ExportEmployees)
				fr.Get("/cpf/{cpf}", employeeHandler.GetEmployeeByCPF)
				fr.Get("/departamento/{departamentoId}", employeeHandler.GetEmployeesByDepartment)
				fr.Get("/nivel/{nivel}", employeeHandler.GetEmployeesBySeniority)
				fr.Get("/{id}", employeeHandler.GetEmployee)
				fr.Put("/{id}", employeeHandler.UpdateEmployee)
				fr.Patch("/{id}", employeeHandler.PatchEmployee)
				fr.Delete("/{id}", employeeHandler.DeleteEmployee)
			})
		})

		// Unversioned aliases resolve the version from the X-API-Version
		// header or the api-version query parameter, defaulting to 1.0.
		api.Group(func(ar chi.Router) {
			ar.Use(VersionResolver(base))

			ar.Route("/departamento", func(dr chi.Router) {
				dr.Get("/", byVersion(base, departmentHandler.GetDepartments, departmentHandler.GetDepartmentsPaged))
				dr.Post("/", byVersion(base, departmentHandler.CreateDepartment, departmentHandler.CreateDepartment))
				dr.Get("/{id}", byVersion(base, departmentHandler.GetDepartment, departmentHandler.GetDepartment))
				dr.Put("/{id}", byVersion(base, departmentHandler.UpdateDepartment, departmentHandler.UpdateDepartment))
				dr.Patch("/{id}", byVersion(base, nil, departmentHandler.PatchDepartment))
				dr.Delete("/{id}", byVersion(base, departmentHandler.DeleteDepartment, departmentHandler.DeleteDepartment))
			})

			ar.Route("/funcionario", func(fr chi.Router) {
				fr.Get("/", byVersion(base, employeeHandler.GetEmployees, employeeHandler.GetEmployeesPaged))
				fr.Post("/", byVersion(base, employeeHandler.CreateEmployee, employeeHandler.CreateEmployee))
				fr.Get("/{id}", byVersion(base, employeeHandler.GetEmployee, employeeHandler.GetEmployee))
				fr.Put("/{id}", byVersion(base, employeeHandler.UpdateEmployee, employeeHandler.UpdateEmployee))
				fr.Patch("/{id}", byVersion(base, nil, employeeHandler.PatchEmployee))
				fr.Delete("/{id}", byVersion(base, employeeHandler.DeleteEmployee, employeeHandler.DeleteEmployee))
			})
		})
	})
}
