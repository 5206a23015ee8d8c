package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/seller-portal/internal/config"
	"github.com/prperemyshlev/seller-portal/internal/handler"
	"github.com/prperemyshlev/seller-portal/internal/repository"
	"github.com/prperemyshlev/seller-portal/internal/service"
	"github.com/prperemyshlev/seller-portal/internal/utils"
	"github.com/prperemyshlev/seller-portal/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

// services bundles what the routes need
type services struct {
	vendor      service.VendorService
	rateLimiter service.RateLimiter
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	logger := infra.Logger()
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry.Duration)

	var (
		blacklist   service.TokenBlacklist
		rateLimiter service.RateLimiter
	)
	if redis := infra.Redis(); redis != nil {
		blacklist = service.NewRedisTokenBlacklist(redis)
		rateLimiter = service.NewRedisRateLimiter(redis)
	} else {
		blacklist = service.NewMemoryTokenBlacklist()
		rateLimiter = service.NewMemoryRateLimiter()
	}

	orderService := service.NewOrderService(repos.Order)
	var seeder service.OrderService
	if cfg.Sandbox.SeedOrders {
		seeder = orderService
	}

	vendorService := service.NewVendorService(repos, jwtManager, blacklist, seeder, cfg.Security.BCryptCost, logger)

	vendorHandler := handler.NewVendorHandler(vendorService, cfg.Server.MaxUploadMB<<20, logger)
	sellerHandler := handler.NewSellerHandler(
		service.NewCatalogService(repos.Category),
		service.NewProductService(repos.Product),
		orderService,
		service.NewStorefrontService(repos.Storefront),
		service.NewDashboardService(repos.Product, repos.Order),
		logger,
	)

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Warn("Ignoring invalid trusted proxies", zap.Strings("trusted_proxies", cfg.Server.TrustedProxies), zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	// otelgin reports through the global provider that InitTelemetry installs
	if infra.MeterProvider() != nil {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, vendorHandler, sellerHandler, services{
		vendor:      vendorService,
		rateLimiter: rateLimiter,
	}, NewHealthChecker(infra), infra.MetricsHandler(), logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	vendorHandler *handler.VendorHandler,
	sellerHandler *handler.SellerHandler,
	svc services,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
	logger *zap.Logger,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	rateLimit := handler.RateLimitMiddleware(
		svc.rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
		logger,
	)
	basicAuth := handler.BasicAuthMiddleware(cfg.BasicAuth.User, cfg.BasicAuth.Password)
	bearer := handler.AuthMiddleware(svc.vendor)

	api := router.Group(cfg.Server.BasePath)

	public := api.Group("", basicAuth)
	{
		public.POST("/vendor/register", rateLimit, vendorHandler.Register)
		public.POST("/auth/login", rateLimit, vendorHandler.Login)
		public.GET("/categories", sellerHandler.Categories)
	}

	seller := api.Group("", bearer)
	{
		seller.POST("/auth/logout", vendorHandler.Logout)
		seller.GET("/auth/me", vendorHandler.Me)
		seller.GET("/vendor/documents", vendorHandler.Documents)

		seller.GET("/products", sellerHandler.ListProducts)
		seller.POST("/products", sellerHandler.CreateProduct)
		seller.GET("/products/:id", sellerHandler.GetProduct)
		seller.PUT("/products/:id", sellerHandler.UpdateProduct)
		seller.DELETE("/products/:id", sellerHandler.DeleteProduct)
		seller.POST("/products/:id/images", sellerHandler.UploadProductImages)

		seller.GET("/orders", sellerHandler.ListOrders)
		seller.GET("/orders/:id", sellerHandler.GetOrder)
		seller.PATCH("/orders/:id/status", sellerHandler.UpdateOrderStatus)

		seller.GET("/storefront", sellerHandler.GetStorefront)
		seller.PUT("/storefront", sellerHandler.UpdateStorefront)

		seller.GET("/dashboard/summary", sellerHandler.DashboardSummary)
		seller.GET("/analytics", sellerHandler.Analytics)

		seller.PUT("/settings/profile", vendorHandler.UpdateProfile)
		seller.PUT("/settings/password", vendorHandler.ChangePassword)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
			zap.String("base_path", a.config.Server.BasePath),
			zap.Bool("postgres", a.infra.Postgres() != nil),
			zap.Bool("redis", a.infra.Redis() != nil),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		return errors.Join(serverErr, err)
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return errors.Join(fmt.Errorf("failed to shutdown server: %w", err), a.infra.Shutdown(ctx))
	}

	if err := a.infra.Shutdown(ctx); err != nil {
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
