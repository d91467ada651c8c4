package api

import (
	"net/http" // HTTP status codes
	"time"     // Request timeout

	"finance_tracker/internal/middleware" // Request guards
	"finance_tracker/internal/service"    // Credential service
	"finance_tracker/internal/store"      // Persistence
	"finance_tracker/internal/utils"      // Cache

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Deps are the collaborators the HTTP surface needs
type Deps struct {
	Credentials    *service.CredentialService // Register, login, me
	Transactions   store.TransactionStore     // Transaction persistence
	Cache          *utils.Cache               // Optional read cache
	JWTSecret      string                     // Token verification key
	RequestTimeout time.Duration              // Per-request deadline
	Log            *logrus.Logger             // Structured logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Log))
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.JWTAuthMiddleware(d.JWTSecret, d.Log) // Session verifier

	// User routes
	users := r.Group("/api/users")
	users.POST("/register", RegisterHandler(d.Credentials, d.Log)) // Registration endpoint
	users.POST("/login", LoginHandler(d.Credentials, d.Log))       // Login endpoint
	users.GET("/me", auth, MeHandler(d.Credentials, d.Log))        // Current user endpoint

	// Transaction routes (protected by JWT)
	h := NewTransactionHandlers(d.Transactions, d.Cache, d.Log)
	txs := r.Group("/api/transaction", auth)
	txs.POST("/add", h.Add)                      // Add transaction
	txs.DELETE("/delete/:id", h.Delete)          // Delete own transaction
	txs.GET("/view", h.View)                     // List, most recent first
	txs.GET("/totalBalance", h.TotalBalance)     // Running balance
	txs.POST("/transactions-summary", h.Summary) // Totals in a date range
	txs.GET("/taxSummary", h.TaxSummary)         // Monthly income
	txs.GET("/categories", h.Categories)         // Accepted category labels

	return r
}
