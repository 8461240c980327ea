package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/production-portal/pkg/jwt"
	"github.com/jhoicas/production-portal/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MRP       MRPRunner
	Logger    *logger.Logger
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// MRP (solo administradores y administradores de programación)
	mrp := protected.Group("/mrp", RequireRole(jwt.RoleAdmin, jwt.RoleSchedulingAdmin))
	mrpHandler := NewMRPHandler(deps.MRP, deps.Logger)
	mrp.Get("/", mrpHandler.Run)
	mrp.Get("/export.xlsx", mrpHandler.ExportXLSX)
	mrp.Get("/report.pdf", mrpHandler.ReportPDF)
}
