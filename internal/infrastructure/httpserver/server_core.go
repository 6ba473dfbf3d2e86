package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/ports"
	customMiddleware "github.com/techstore3d/backend/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	ProductService ports.ProductService
	CartService    ports.CartService
	UserService    ports.UserService
	ReviewService  ports.ReviewService
	StatusService  ports.StatusService
	CacheBackend   ports.CacheBackend
	Optimizer      ports.DatabaseOptimizer
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	productSvc     ports.ProductService
	cartSvc        ports.CartService
	userSvc        ports.UserService
	reviewSvc      ports.ReviewService
	statusSvc      ports.StatusService
	cacheBackend   ports.CacheBackend
	optimizer      ports.DatabaseOptimizer
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		productSvc:     deps.ProductService,
		cartSvc:        deps.CartService,
		userSvc:        deps.UserService,
		reviewSvc:      deps.ReviewService,
		statusSvc:      deps.StatusService,
		cacheBackend:   deps.CacheBackend,
		optimizer:      deps.Optimizer,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
