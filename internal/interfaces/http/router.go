package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/pkg/jwt"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC CustomerService
	Log        *logger.Logger
	JWTSecret  string
	JWTIssuer  string // vacío: no se verifica iss
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, WithIssuer(deps.JWTIssuer)))

	readers := RequireRole(jwt.RoleAdmin, jwt.RoleFacturador, jwt.RoleConsulta)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleFacturador)
	admins := RequireRole(jwt.RoleAdmin)

	// Customers (protegido, facturación)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", writers, customerHandler.Create)
	customers.Get("/", readers, customerHandler.List)
	// export.csv antes de /:id para que no se interprete como id
	customers.Get("/export.csv", writers, customerHandler.ExportCSV)
	customers.Get("/:id", readers, customerHandler.Get)
	customers.Get("/:id/summary", readers, customerHandler.Summary)
	customers.Get("/:id/statement.pdf", readers, customerHandler.StatementPDF)
	customers.Put("/:id", writers, customerHandler.Update)
	customers.Delete("/:id", admins, customerHandler.Delete)
}
