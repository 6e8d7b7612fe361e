package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/frizzly/api/docs"
	"github.com/frizzly/api/pkg/config"
	"github.com/frizzly/api/pkg/discovery"
	"github.com/frizzly/api/pkg/metrics"
	"github.com/frizzly/api/pkg/repository"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// ServiceLocator finds registered instances of a service.
type ServiceLocator interface {
	Discover(ctx context.Context, serviceName string) ([]*discovery.ServiceInstance, error)
}

type Gateway struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	server *http.Server

	// discovery is nil when etcd is not configured.
	discovery ServiceLocator

	// store is nil when the document store could not be opened; data
	// routes then answer 503.
	store    repository.DocumentStore
	orders   *repository.OrderRepository
	products *repository.ProductRepository
	users    *repository.UserRepository

	now func() time.Time
}

func NewGateway(cfg *config.Config, logger *zap.Logger, store repository.DocumentStore, disc ServiceLocator) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(requestID())
	router.Use(loggerMiddleware(logger))
	router.Use(metrics.Middleware())
	router.Use(gin.Recovery())
	router.Use(cors(cfg.CORS))

	g := &Gateway{
		config: cfg,
		logger: logger,
		router: router,
		server: &http.Server{
			Addr:              cfg.Gateway.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		discovery: disc,
		store:     store,
		now:       time.Now,
	}

	if store != nil {
		g.orders = repository.NewOrderRepository(store)
		g.products = repository.NewProductRepository(store)
		g.users = repository.NewUserRepository(store)
	}

	return g
}

func (g *Gateway) SetupRoutes() {
	g.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	g.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	g.router.GET("/", g.root)

	api := g.router.Group("/api")
	{
		api.GET("/health", g.health)

		data := api.Group("", g.requireStore())
		{
			orders := data.Group("/orders")
			{
				orders.GET("", g.listOrders)
				orders.POST("", g.createOrder)
				orders.PUT("/:id", g.updateOrder)
				orders.DELETE("/:id", g.deleteOrder)
			}

			products := data.Group("/products")
			{
				products.GET("", g.listProducts)
				products.POST("", g.createProduct)
				products.PUT("/:id", g.updateProduct)
				products.DELETE("/:id", g.deleteProduct)
			}

			users := data.Group("/users")
			{
				users.POST("", g.createUser)
				users.GET("/:id", g.getUser)
			}

			data.GET("/analytics/orders", g.orderAnalytics)
		}
	}

	g.router.GET("/metrics", metrics.Handler())
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler exposes the router, mainly for tests.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

// Start serves until Shutdown is called.
func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting",
		zap.String("address", g.server.Addr),
		zap.Bool("store_connected", g.store != nil),
	)
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

// requireStore short-circuits data routes while the store is unavailable.
func (g *Gateway) requireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.store == nil {
			fail(c, unavailableError())
			return
		}
		c.Next()
	}
}
