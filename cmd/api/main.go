package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/Taller-api/docs"
	appanalytics "github.com/jhoicas/Taller-api/internal/application/analytics"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/checkin"
	"github.com/jhoicas/Taller-api/internal/application/quotations"
	"github.com/jhoicas/Taller-api/internal/application/tools"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/Taller-api/internal/infrastructure/excel"
	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// @title                       Taller API
// @version                     1.0
// @description                 API de gestión de taller y flota: empleados, inventario, herramientas, vehículos, ingresos/salidas y cotizaciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	toolRepo := postgres.NewToolRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	bayRepo := postgres.NewBayRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	ingresoRepo := postgres.NewIngresoRepository(pool)
	salidaRepo := postgres.NewSalidaRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	files, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	exporter := infraexcel.NewExporter()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Security.BcryptCost, log)
	userUC := usecase.NewUserUseCase(userRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, vehicleRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, employeeRepo, txRunner)
	bayUC := usecase.NewBayUseCase(bayRepo)
	providerUC := usecase.NewProviderUseCase(providerRepo)
	toolUC := tools.NewUseCase(toolRepo, employeeRepo, exporter, log)
	checkinUC := checkin.NewUseCase(ingresoRepo, salidaRepo, txRunner, files, log)
	quotationUC := quotations.NewUseCase(quotationRepo, txRunner, pdfGenerator, exporter, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, toolRepo, appanalytics.DefaultLowStockThreshold)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(reg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxFileBytes)*cfg.Upload.MaxFiles + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(requestid.New())
	app.Use(httpRouter.Metrics(httpMetrics))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "disk" {
		app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir, fiber.Static{MaxAge: 3600})
	}

	deps := httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		EmployeeUC:  employeeUC,
		ProductUC:   productUC,
		VehicleUC:   vehicleUC,
		BayUC:       bayUC,
		ProviderUC:  providerUC,
		ToolUC:      toolUC,
		CheckinUC:   checkinUC,
		QuotationUC: quotationUC,
		DashboardUC: dashboardUC,
		Users:       userRepo,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	}

	var redisClient *cache.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, límite de intentos de login deshabilitado")
		} else {
			deps.LoginLimiter = cache.NewLoginLimiter(redisClient, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		}
	}

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("cierre de redis")
		}
	}

	log.Info().Msg("aplicación detenida")
}
