package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/auth"
	"github.com/jhoicas/timesheet-api/internal/application/usecase"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	JobTypeUC   *usecase.JobTypeUseCase
	CrewChiefUC *usecase.CrewChiefUseCase
	EntryUC     *usecase.EntryUseCase
	UserUC      *usecase.UserUseCase

	SessionCookieName string
	SecureCookies     bool
}

// Router registra las rutas de la API. Authenticate corre sobre todo /api y
// resuelve cookie de sesión o Bearer token; cada grupo decide después qué
// exige (RequireAuth / RequireRole).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", Authenticate(deps.AuthUC, deps.SessionCookieName))

	// Auth: login/logout públicos, check responde para cualquier estado.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionCookieName, deps.SecureCookies)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/check", authHandler.Check)

	// Timesheet: todo requiere identidad; las escrituras además requieren rol.
	ts := api.Group("/timesheet", RequireAuth())

	companies := ts.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", RequireRole(entity.RoleAdmin), companyHandler.Create)
	companies.Delete("/:id", RequireRole(entity.RoleAdmin), companyHandler.Delete)

	jobTypes := ts.Group("/job-types")
	jobTypeHandler := NewJobTypeHandler(deps.JobTypeUC)
	jobTypes.Get("/", jobTypeHandler.List)
	jobTypes.Post("/", RequireRole(entity.RoleAdmin), jobTypeHandler.Create)
	jobTypes.Delete("/:id", RequireRole(entity.RoleAdmin), jobTypeHandler.Delete)

	crews := ts.Group("/crew-chiefs")
	crewHandler := NewCrewChiefHandler(deps.CrewChiefUC)
	crews.Get("/", crewHandler.List)
	crews.Post("/", RequireRole(entity.RoleAdmin, entity.RoleProgramManager), crewHandler.Create)
	crews.Delete("/:id", RequireRole(entity.RoleAdmin), crewHandler.Delete)

	// Entries: el accountant es solo-lectura; la visibilidad por creador la
	// aplica el caso de uso, no el router.
	entries := ts.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Post("/", RequireRole(entity.RoleAdmin, entity.RoleProgramManager), entryHandler.CreateBulk)
	entries.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleProgramManager), entryHandler.Update)
	entries.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleProgramManager), entryHandler.Delete)

	// Export: mismo alcance de lectura que el listado.
	export := api.Group("/export", RequireAuth())
	exportHandler := NewExportHandler(deps.EntryUC)
	export.Get("/excel", exportHandler.Excel)

	// Users: administración, solo admin.
	users := api.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
