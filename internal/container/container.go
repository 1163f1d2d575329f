// Package container wires the store backend, the application services and
// the HTTP server, and owns their lifecycle.
package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/config"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/internal/i18n"
	httpserver "github.com/garyjia/leave-master/internal/interfaces/http"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in order and torn down in reverse.
type Container struct {
	config *config.Config
	logger *zap.Logger

	store    port.Store
	services *ServiceBundle
	server   *httpserver.Server

	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth = httpserver.ComponentHealth

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components:
// 1. Messages
// 2. Store backend
// 3. Application services
// 4. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization", zap.String("backend", c.config.Store.Backend))

	if err := i18n.Init(c.config.UI.Locale); err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	store, err := ProvideStore(ctx, c.config, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	c.store = store
	c.logger.Info("Store initialized")

	c.services = ProvideServices(store, c.logger)
	c.logger.Info("Application services initialized")

	server, err := ProvideServer(c.config, c.services, store, c.probe, c.logger)
	if err != nil {
		c.closeStore()
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	c.server = server

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close releases the store. The HTTP server is stopped by its Start context.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}
	c.logger.Info("Closing container")

	err := c.closeStore()
	c.ready.Store(false)
	c.closed.Store(true)

	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	c.logger.Info("Container closed")
	return nil
}

func (c *Container) closeStore() error {
	if c.store.Close == nil {
		return nil
	}
	err := c.store.Close()
	c.store.Close = nil
	if err != nil {
		c.logger.Error("Failed to close store", zap.Error(err))
	}
	return err
}

// Ready reports whether Start completed
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health probes the store schema.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{Overall: true, Components: map[string]ComponentHealth{}}
	if !c.ready.Load() {
		status.Overall = false
		status.Components["container"] = ComponentHealth{Healthy: false, Message: "not started"}
		return status
	}

	if _, err := c.store.Schema.Field(ctx, entity.FieldLeaveType); err != nil {
		status.Overall = false
		status.Components["store"] = ComponentHealth{Healthy: false, Message: err.Error()}
	} else {
		status.Components["store"] = ComponentHealth{Healthy: true}
	}
	return status
}

// probe adapts Health to the server's health endpoint
func (c *Container) probe(ctx context.Context) (bool, map[string]ComponentHealth) {
	status := c.Health(ctx)
	return status.Overall, status.Components
}

// Server returns the HTTP server
func (c *Container) Server() *httpserver.Server {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.server
}

// Services returns the application services
func (c *Container) Services() *ServiceBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services
}

// Logger returns the container logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}
