package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/lcconsulting/consulting_backend/config"
	"bitbucket.org/lcconsulting/consulting_backend/middlewares"
	"bitbucket.org/lcconsulting/consulting_backend/models"
	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Shutdown coordination: handle SIGTERM for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server before connecting dependencies so the process
	// reports healthy quickly; app endpoints 503 until DB/Redis are ready.
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		// Gate API endpoints on dependency readiness.
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS:
	// - In production, require explicit allowlist via CORS_ALLOWED_ORIGINS (comma-separated).
	// - In non-production, allow all (developer convenience).
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PATCH", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/api/healthy", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "healthy",
		})
	})

	api := r.Group("/api", middlewares.AuthMiddleware())

	api.GET("/clients", middlewares.RequirePermission("read:clients"), getClientsHandler())
	api.POST("/clients", middlewares.RequirePermission("create:clients"), addClientHandler())
	api.GET("/clients/:id", middlewares.RequirePermission("read:clients"), getClientHandler())
	api.PATCH("/clients/:id", middlewares.RequirePermission("update:clients"), updateClientHandler())
	api.DELETE("/clients/:id", middlewares.RequirePermission("delete:clients"), deleteClientHandler())

	api.GET("/clients/:id/contacts", middlewares.RequirePermission("read:client-contacts"), getClientContactsHandler())
	api.POST("/clients/:id/contacts", middlewares.RequirePermission("create:client-contacts"), addClientContactHandler())
	api.GET("/clients/:id/contacts/:contact_id", middlewares.RequirePermission("read:client-contacts"), getClientContactHandler())
	api.PATCH("/clients/:id/contacts/:contact_id", middlewares.RequirePermission("update:client-contacts"), updateClientContactHandler())
	api.DELETE("/clients/:id/contacts/:contact_id", middlewares.RequirePermission("delete:client-contacts"), deleteClientContactHandler())

	api.GET("/contacts", middlewares.RequirePermission("read:contacts"), getContactsHandler())
	api.POST("/contacts", middlewares.RequirePermission("create:contacts"), addContactHandler())
	api.GET("/contacts/:id", middlewares.RequirePermission("read:contacts"), getContactHandler())
	api.PATCH("/contacts/:id", middlewares.RequirePermission("update:contacts"), updateContactHandler())
	api.DELETE("/contacts/:id", middlewares.RequirePermission("delete:contacts"), deleteContactHandler())

	api.GET("/reports", middlewares.RequirePermission("read:reports"), getReportsHandler())
	api.POST("/reports", middlewares.RequirePermission("create:reports"), addReportHandler())
	api.GET("/reports/:id", middlewares.RequirePermission("read:reports"), getReportHandler())
	api.PATCH("/reports/:id", middlewares.RequirePermission("update:reports"), updateReportHandler())
	api.DELETE("/reports/:id", middlewares.RequirePermission("delete:reports"), deleteReportHandler())

	api.GET("/reports/:id/items", middlewares.RequirePermission("read:report-items"), getReportItemsHandler())
	api.POST("/reports/:id/items", middlewares.RequirePermission("create:report-items"), addReportItemHandler())
	api.GET("/reports/:id/items/:item_nbr", middlewares.RequirePermission("read:report-items"), getReportItemHandler())
	api.PATCH("/reports/:id/items/:item_nbr", middlewares.RequirePermission("update:report-items"), updateReportItemHandler())
	api.DELETE("/reports/:id/items/:item_nbr", middlewares.RequirePermission("delete:report-items"), deleteReportItemHandler())

	r.NoRoute(func(c *gin.Context) {
		jsonError(c, http.StatusNotFound, msgNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		jsonError(c, http.StatusMethodNotAllowed, msgNotAllowed)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, dbErr := db.DB()
	if dbErr != nil {
		logger.WithFields(logrus.Fields{"field": "database"}).Error("failed to access sql.DB handle: " + dbErr.Error())
	}
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow disabling migrations
	// on startup and running them as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	// Set the session isolation level to READ COMMITTED; the aggregate
	// engine relies on row locks plus read-committed, nothing stronger.
	for attempt := 1; ; attempt++ {
		err := db.Exec("SET SESSION TRANSACTION ISOLATION LEVEL READ COMMITTED").Error
		if err == nil {
			break
		}
		sleep := time.Second * time.Duration(1<<minInt(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{
			"field":   "database",
			"attempt": attempt,
		}).Warn("failed to set isolation level; retrying in " + sleep.String() + ": " + err.Error())
		time.Sleep(sleep)
	}

	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
