// Package http exposes console stores as local JSON API.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/MichalMitros/crm-console/internal/catalog"
	"github.com/MichalMitros/crm-console/internal/dashboard"
	"github.com/MichalMitros/crm-console/internal/filter"
	"github.com/MichalMitros/crm-console/internal/platform/metrics"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Products --filename products.go
//go:generate mockery --name Browser --filename browser.go
//go:generate mockery --name Users --filename users.go
//go:generate mockery --name Dashboard --filename dashboard.go
//go:generate mockery --name Session --filename session.go

// Products is synchronised products view.
type Products interface {
	State() catalog.State
	SetFilter(next filter.Filter)
	SetPage(page int)
	ResetFilters()
	Refetch(ctx context.Context) error
}

// Browser loads product pages outside synchronised search.
type Browser interface {
	Product(ctx context.Context, id string) (*catalog.Detail, error)
	Category(ctx context.Context, category string) ([]models.Product, error)
}

// Users is users manager view.
type Users interface {
	State() users.State
	Reload(ctx context.Context) error
	Create(ctx context.Context, registration models.Registration) (*models.User, error)
	Profile(ctx context.Context) (*models.User, error)
	ToggleStatus(ctx context.Context, id string) error
	ChangeRole(ctx context.Context, id string, role models.Role) error
}

// Dashboard is CRM statistics store.
type Dashboard interface {
	Snapshot() dashboard.Snapshot
	Refresh(ctx context.Context) error
	UpdateStats(update dashboard.StatsUpdate) models.Stats
	History(ctx context.Context, limit int) ([]models.StatsSnapshot, error)
}

// Session is session store.
type Session interface {
	Session() *models.Session
	Loading() bool
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout() error
	Register(ctx context.Context, registration models.Registration) error
}

// Option is custom configuration of Server.
type Option func(s *Server)

// Server routes local API requests to console stores.
type Server struct {
	products     Products
	browser      Browser
	users        Users
	dashboard    Dashboard
	session      Session
	logger       *zerolog.Logger
	metrics      *metrics.Metrics
	metricsRoute http.Handler
	router       *gin.Engine
	historyLimit int
}

// NewServer returns new Server with all routes registered.
func NewServer(
	products Products,
	browser Browser,
	users Users,
	dashboard Dashboard,
	session Session,
	logger *zerolog.Logger,
	ops ...Option,
) *Server {
	s := &Server{
		products:     products,
		browser:      browser,
		users:        users,
		dashboard:    dashboard,
		session:      session,
		logger:       logger,
		historyLimit: 30,
	}

	for _, op := range ops {
		op(s)
	}

	s.router = gin.New()
	s.router.Use(s.logRequests, gin.Recovery())
	s.routes()

	return s
}

// Handler returns http.Handler serving local API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	productRoutes := s.router.Group("/products")
	productRoutes.GET("", s.getProducts)
	productRoutes.PUT("/filter", s.putFilter)
	productRoutes.POST("/filter/reset", s.resetFilter)
	productRoutes.PUT("/page", s.putPage)
	productRoutes.POST("/refetch", s.refetchProducts)
	productRoutes.GET("/category/:category", s.getCategory)
	productRoutes.GET("/:id", s.getProduct)

	userRoutes := s.router.Group("/users")
	userRoutes.GET("", s.getUsers)
	userRoutes.POST("", s.createUser)
	userRoutes.GET("/me", s.getProfile)
	userRoutes.POST("/reload", s.reloadUsers)
	userRoutes.PATCH("/:id/status", s.toggleUserStatus)
	userRoutes.PATCH("/:id/role", s.changeUserRole)

	dashboardRoutes := s.router.Group("/dashboard")
	dashboardRoutes.GET("", s.getDashboard)
	dashboardRoutes.POST("/refresh", s.refreshDashboard)
	dashboardRoutes.PATCH("/stats", s.updateStats)
	dashboardRoutes.GET("/history", s.getHistory)

	sessionRoutes := s.router.Group("/session")
	sessionRoutes.GET("", s.getSession)
	sessionRoutes.POST("/login", s.login)
	sessionRoutes.POST("/logout", s.logout)
	sessionRoutes.POST("/register", s.register)

	if s.metricsRoute != nil {
		s.router.GET("/metrics", gin.WrapH(s.metricsRoute))
	}
}

// logRequests logs every request and counts it by route.
func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()

	if s.metrics != nil {
		s.metrics.LocalRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}

	event := s.logger.Debug()
	if status >= http.StatusInternalServerError {
		event = s.logger.Error()
	}

	event.
		Str("method", c.Request.Method).
		Str("route", route).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("local api request")
}

// WithMetrics sets collectors counting requests.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMetricsHandler serves h under /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsRoute = h
	}
}

// WithHistoryLimit sets default number of listed stats snapshots.
func WithHistoryLimit(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}
