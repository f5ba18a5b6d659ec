// Package httpd exposes the shop engine over HTTP. It is a thin
// adapter: parsing, auth and status-code mapping live here, every rule
// lives in the engine. The engine itself is single-threaded by
// contract, so one mutex serializes every call into it.
package httpd

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/shop"
)

type credential struct {
	passwordHash []byte
	customerID   string
}

type Server struct {
	sys *shop.System
	log *zap.Logger

	jwtSecret    []byte
	allowOrigins []string

	// mu guards sys and creds. The order pipeline's check-then-decrement
	// must never interleave across requests.
	mu    sync.Mutex
	creds map[string]credential // keyed by email
}

func New(sys *shop.System, cfg Config, log *zap.Logger) *Server {
	return &Server{
		sys:          sys,
		log:          log,
		jwtSecret:    []byte(cfg.JWTSecret),
		allowOrigins: cfg.AllowOrigins,
		creds:        make(map[string]credential),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Auth
	r.POST("/api/register", s.register)
	r.POST("/api/login", s.login)

	// Catalog, open to anyone
	r.GET("/api/products", s.listProducts)
	r.GET("/api/products/:id", s.getProduct)
	r.GET("/api/products/:id/ratings", s.getRatings)
	r.GET("/api/books", s.listBooks)
	r.GET("/api/customers", s.listCustomers)
	r.GET("/api/stats", s.orderStats)

	// Customer
	auth := r.Group("/api", s.authMiddleware)
	{
		// Cart
		auth.GET("/cart", s.getCart)
		auth.POST("/cart", s.addToCart)
		auth.DELETE("/cart/:productId", s.removeCartItem)
		auth.POST("/cart/checkout", s.checkoutCart)

		// Orders
		auth.GET("/orders", s.getOrders)
		auth.POST("/orders", s.placeOrder)
		auth.POST("/orders/:orderNumber/ship", s.shipOrder)
		auth.DELETE("/orders/:orderNumber", s.cancelOrder)

		// Ratings
		auth.POST("/products/:id/ratings", s.rateProduct)
	}
	return r
}

func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("took", time.Since(start)),
	)
}

// renderError maps the engine's failure kinds onto status codes:
// missing things are 404, exhausted stock is 409, everything else the
// engine rejects is a 400. Adapter-level auth failures are handled
// where they occur.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shop.ErrUnknownCustomer),
		errors.Is(err, shop.ErrUnknownProduct),
		errors.Is(err, shop.ErrInvalidOrder):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, shop.ErrNoStock):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		c.JSON(400, gin.H{"error": err.Error()})
	}
}
