package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"session-guard/internal/session"
	"session-guard/internal/session/config"
	"session-guard/internal/shared/logger"
)

const closeTimeout = 30 * time.Second

// Container owns module instances and their lifecycle
type Container struct {
	mu sync.RWMutex
	// Module instances
	SessionModule *session.SessionModule
	// Configuration
	SessionConfig *config.Config
	// Logger
	Logger logger.Logger
}

// NewContainer creates a new DI container
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{
		Logger: log,
	}
}

// InitializeSession initializes the session module
func (c *Container) InitializeSession(cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SessionModule != nil {
		return fmt.Errorf("session module already initialized")
	}

	sessionModule, err := session.NewSessionModule(cfg, c.Logger.WithComponent("session"))
	if err != nil {
		return fmt.Errorf("failed to create session module: %w", err)
	}

	c.SessionConfig = cfg
	c.SessionModule = sessionModule
	return nil
}

// GetSessionModule returns the session module instance
func (c *Container) GetSessionModule() *session.SessionModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SessionModule
}

// HealthCheck reports whether every required module is initialized
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.SessionModule == nil {
		return fmt.Errorf("session module not initialized")
	}

	return nil
}

// Cleanup stops modules in reverse order of initialization
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.SessionModule != nil {
		if err := c.SessionModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop session module: %w", err))
		}
		c.SessionModule = nil
	}

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}

	return nil
}

// Close gracefully shuts down all modules in the container with timeout
func (c *Container) Close() error {
	c.Logger.Info("Closing DI container resources")

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
		return err
	}

	c.Logger.Info("DI container resources closed")
	return nil
}
