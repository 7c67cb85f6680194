package router

import (
	"autopartes/internal/config"
	"autopartes/internal/handler"
	"autopartes/internal/infra"
	"autopartes/internal/middleware"
	"autopartes/internal/repository"
	"autopartes/internal/service"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← connection provider
func New(cfg *config.Config, db *infra.DB) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, cfg.ImagenesPath)
	ventaSvc := service.NewVentaService(ventaRepo)
	reporteSvc := service.NewReporteService(db, cfg.ReportesPath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", authH.Login)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/ventas", middleware.RequireRole("vendedor", "admin"), ventasH.Registrar)
		v1.GET("/ventas/historial", middleware.RequireRole("vendedor", "admin"), ventasH.Historial)

		v1.GET("/productos", middleware.RequireRole("vendedor", "admin"), productosH.Listar)
		v1.GET("/productos/:codigo", middleware.RequireRole("vendedor", "admin"), productosH.ObtenerPorCodigo)
		// Write operations — admin only
		prods := v1.Group("/productos", middleware.RequireRole("admin"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:codigo", productosH.Actualizar)
			prods.DELETE("/:codigo", productosH.Eliminar)
			prods.POST("/:codigo/imagen", productosH.AsignarImagen)
		}

		reportes := v1.Group("/reportes", middleware.RequireRole("admin"))
		{
			reportes.GET("/ventas", reportesH.Ventas)
			reportes.GET("/kpis", reportesH.KPIs)
			reportes.GET("/pdf", reportesH.PDF)
		}

		v1.POST("/usuarios", middleware.RequireRole("admin"), authH.CrearUsuario)
	}

	return r
}
