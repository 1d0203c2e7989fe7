// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/config"
	"github.com/rentaldesk/rental-bff/internal/http"
	"github.com/rentaldesk/rental-bff/internal/middleware"
)

const closeTimeout = 5 * time.Second

// App is the wired application.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	// GraphQL client, query cache and rental services
	serviceComponents := InitializeServices(cfg)

	// MongoDB repositories for audit logs and contract drafts
	dbComponents := InitializeDatabase(cfg.Database)
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		Services: serviceComponents,
		Database: dbComponents,
	}
}

// Close flushes pending audit logs and releases connections.
func (a *App) Close() {
	middleware.StopAsyncLogger()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	a.Database.Close(ctx)
	if a.Services != nil {
		a.Services.Close()
	}
}
