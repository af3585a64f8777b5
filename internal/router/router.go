package router

import (
	"time"

	"pastelpos/internal/config"
	"pastelpos/internal/handler"
	"pastelpos/internal/infra"
	"pastelpos/internal/middleware"
	"pastelpos/internal/repository"
	"pastelpos/internal/service"
	"pastelpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	captcha := infra.NewCaptcha(infra.NewCaptchaStore())
	stripeCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	stripeClient := infra.NewStripeClient(cfg.StripeSecretKey, stripeCB)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, captcha, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, dispatcher, service.PrecioFuente(cfg.PrecioVentaFuente))
	statsSvc := service.NewEstadisticasService(ventaRepo)
	reporteSvc := service.NewReporteService(ventaRepo, cfg.NombreNegocio)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	pagosH := handler.NewPagosHandler(stripeClient)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, stripeCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.GET("/captcha", authH.Captcha)
		auth.POST("/password-strength", authH.PasswordStrength)
	}

	// Store front (public): catalog, account, checkout, card payments
	tienda := r.Group("/v1/tienda")
	{
		tienda.GET("/productos", productosH.Listar)
		tienda.GET("/productos/:id", productosH.ObtenerPorID)
		tienda.POST("/registro", middleware.LoginRateLimiter(), clientesH.Registrar)
		tienda.POST("/login", middleware.LoginRateLimiter(), clientesH.Login)
		tienda.POST("/checkout", ventasH.RegistrarVentaOnline)
	}

	// Customer account routes — customer token required
	perfil := r.Group("/v1/tienda/perfil", middleware.ClienteAuth(cfg.JWTSecret))
	{
		perfil.GET("", clientesH.Perfil)
		perfil.PUT("", clientesH.ActualizarPerfil)
	}

	// Payments require some identity (staff or customer) so anonymous
	// callers can't mint PaymentIntents.
	pagos := r.Group("/v1/pagos", middleware.AnyAuth(cfg.JWTSecret), middleware.RateLimiter(30, time.Minute))
	{
		pagos.POST("/intent", pagosH.CrearIntent)
		pagos.POST("/confirmar", pagosH.ConfirmarPago)
	}

	// Protected back-office routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: Admin, Employee — declared per-endpoint
		v1.POST("/ventas", middleware.RequireRole("Admin", "Employee"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("Admin", "Employee"), ventasH.ListarVentas)
		v1.GET("/ventas/hoy", middleware.RequireRole("Admin", "Employee"), ventasH.VentasHoy)
		v1.GET("/ventas/:id", middleware.RequireRole("Admin", "Employee"), ventasH.ObtenerPorID)
		v1.GET("/ventas/:id/recibo", middleware.RequireRole("Admin", "Employee"), reportesH.Recibo)

		v1.GET("/productos", middleware.RequireRole("Admin", "Employee"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("Admin", "Employee"), productosH.ObtenerPorID)
		// Write operations — Admin only
		prods := v1.Group("/productos", middleware.RequireRole("Admin"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		stats := v1.Group("/estadisticas", middleware.RequireRole("Admin", "Employee"))
		{
			stats.GET("/productos", statsH.VentasPorProducto)
			stats.GET("/hoy", statsH.ResumenHoy)
		}

		v1.GET("/reportes/ventas", middleware.RequireRole("Admin", "Employee"), reportesH.ReporteVentas)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("Admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
			usuarios.PATCH("/:id/pagar", usuariosH.Pagar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
