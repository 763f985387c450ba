package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/checkin"
	"github.com/jhoicas/Taller-api/internal/application/quotations"
	"github.com/jhoicas/Taller-api/internal/application/tools"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	ProductUC   *usecase.ProductUseCase
	VehicleUC   *usecase.VehicleUseCase
	BayUC       *usecase.BayUseCase
	ProviderUC  *usecase.ProviderUseCase
	ToolUC      *tools.UseCase
	CheckinUC   *checkin.UseCase
	QuotationUC *quotations.UseCase
	DashboardUC *analytics.DashboardUseCase

	// Users resuelve el usuario del token en cada petición.
	Users     UserLoader
	JWTSecret string
	// LoginLimiter opcional; nil desactiva el límite de intentos.
	LoginLimiter loginLimiter
	Log          *logger.Logger
}

// Router registra las rutas de la API. Las rutas estáticas de cada grupo van antes que /:id.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	authn := AuthMiddleware(deps.JWTSecret, deps.Users)
	staff := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)
	adminOnly := RequireRole(entity.RoleAdmin)

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginRateLimit(deps.LoginLimiter, log), authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", authn, authHandler.Me)
	authGroup.Post("/me", authn, authHandler.Me)
	authGroup.Put("/me", authn, authHandler.UpdateMe)
	authGroup.Put("/change-password", authn, authHandler.ChangePassword)
	authGroup.Post("/register", authn, adminOnly, authHandler.Register)
	authGroup.Get("/users", authn, adminOnly, authHandler.ListUsers)
	authGroup.Get("/users/:id", authn, adminOnly, authHandler.GetUser)
	authGroup.Put("/:id/deactivate", authn, adminOnly, authHandler.Deactivate)

	// Employees
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := api.Group("/employees", authn)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", adminOnly, employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)
	employees.Post("/:id/deliver-product", staff, employeeHandler.DeliverProduct)
	employees.Put("/:id/asignar-employee", staff, employeeHandler.AssignVehicle)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", authn)
	products.Get("/", productHandler.List)
	products.Post("/", staff, productHandler.Create)
	products.Get("/count", productHandler.Count)
	products.Post("/add-to-inventory", staff, productHandler.AddToInventory)
	products.Put("/return-to-inventory/:id", staff, productHandler.ReturnToInventory)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", staff, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Put("/:id/cantidad", staff, productHandler.SetQuantity)
	products.Get("/:id/history", productHandler.History)

	// Tools: asignar y devolver abierto a todos los roles autenticados.
	toolHandler := NewToolHandler(deps.ToolUC)
	toolsGroup := api.Group("/tools", authn)
	toolsGroup.Get("/", toolHandler.List)
	toolsGroup.Post("/", staff, toolHandler.Create)
	toolsGroup.Get("/available", toolHandler.Available)
	toolsGroup.Get("/assigned", toolHandler.Assigned)
	toolsGroup.Get("/export", staff, toolHandler.Export)
	toolsGroup.Get("/stats/most-used", staff, toolHandler.MostUsed)
	toolsGroup.Get("/stats/top-employees", staff, toolHandler.TopEmployees)
	toolsGroup.Get("/stats/usage-duration", staff, toolHandler.UsageDuration)
	toolsGroup.Get("/stats/maintenance-cost", staff, toolHandler.MaintenanceCost)
	toolsGroup.Get("/:id", toolHandler.GetByID)
	toolsGroup.Put("/:id", staff, toolHandler.Update)
	toolsGroup.Delete("/:id", staff, toolHandler.Delete)
	toolsGroup.Get("/:id/history", toolHandler.History)
	toolsGroup.Put("/:id/assign", toolHandler.Assign)
	toolsGroup.Put("/:id/return", toolHandler.Return)
	toolsGroup.Post("/:id/maintenance", staff, toolHandler.Maintenance)
	toolsGroup.Put("/:id/repair", staff, toolHandler.Repair)

	// Vehículos
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehiculos := api.Group("/vehiculos", authn)
	vehiculos.Get("/", vehicleHandler.List)
	vehiculos.Post("/", staff, vehicleHandler.Create)
	vehiculos.Get("/:id", vehicleHandler.GetByID)
	vehiculos.Put("/:id", staff, vehicleHandler.Update)
	vehiculos.Delete("/:id", adminOnly, vehicleHandler.Delete)
	vehiculos.Put("/:id/asignar-employees", staff, vehicleHandler.AssignEmployee)
	vehiculos.Put("/:id/update-status", staff, vehicleHandler.UpdateStatus)
	vehiculos.Post("/:id/asignar-productos", staff, vehicleHandler.AssignProduct)

	// Bahías
	bayHandler := NewBayHandler(deps.BayUC)
	bays := api.Group("/bays", authn)
	bays.Get("/", bayHandler.List)
	bays.Post("/", staff, bayHandler.Create)
	bays.Get("/:id", bayHandler.GetByID)
	bays.Put("/:id", staff, bayHandler.Update)
	bays.Delete("/:id", adminOnly, bayHandler.Delete)

	// Proveedores
	providerHandler := NewProviderHandler(deps.ProviderUC)
	proveedores := api.Group("/proveedores", authn)
	proveedores.Get("/", providerHandler.List)
	proveedores.Post("/", staff, providerHandler.Create)
	proveedores.Get("/:id", providerHandler.GetByID)
	proveedores.Put("/:id", staff, providerHandler.Update)
	proveedores.Delete("/:id", adminOnly, providerHandler.Delete)

	// Ingresos y salidas
	checkinHandler := NewCheckinHandler(deps.CheckinUC)
	ingresos := api.Group("/ingresos", authn)
	ingresos.Get("/", checkinHandler.ListIngresos)
	ingresos.Post("/", checkinHandler.CreateIngreso)
	ingresos.Get("/:id", checkinHandler.GetIngreso)
	ingresos.Put("/:id", staff, checkinHandler.UpdateIngreso)
	ingresos.Delete("/:id", adminOnly, checkinHandler.DeleteIngreso)

	salidas := api.Group("/salidas", authn)
	salidas.Get("/", checkinHandler.ListSalidas)
	salidas.Post("/", checkinHandler.CreateSalida)
	salidas.Get("/ingreso/:ingresoId", checkinHandler.GetSalidaByIngreso)
	salidas.Get("/:id", checkinHandler.GetSalida)

	// Cotizaciones
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotationsGroup := api.Group("/quotations", authn)
	quotationsGroup.Get("/", quotationHandler.List)
	quotationsGroup.Post("/", staff, quotationHandler.Create)
	quotationsGroup.Get("/export", quotationHandler.Export)
	quotationsGroup.Get("/products/suggestions/:query", quotationHandler.Suggestions)
	quotationsGroup.Put("/products/batch", staff, quotationHandler.BatchUpdateProducts)
	quotationsGroup.Get("/:id", quotationHandler.GetByID)
	quotationsGroup.Put("/:id", staff, quotationHandler.Update)
	quotationsGroup.Delete("/:id", adminOnly, quotationHandler.Delete)
	quotationsGroup.Put("/:id/status", staff, quotationHandler.UpdateStatus)
	quotationsGroup.Put("/:id/products", staff, quotationHandler.UpdateProducts)
	quotationsGroup.Get("/:id/pdf", quotationHandler.PDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", authn, dashboardHandler.GetSummary)
}
