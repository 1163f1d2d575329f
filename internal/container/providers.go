package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/application/service"
	"github.com/garyjia/leave-master/internal/config"
	"github.com/garyjia/leave-master/internal/infrastructure/external/lark"
	"github.com/garyjia/leave-master/internal/infrastructure/persistence/mongo"
	"github.com/garyjia/leave-master/internal/infrastructure/persistence/repository"
	httpserver "github.com/garyjia/leave-master/internal/interfaces/http"
	"github.com/garyjia/leave-master/pkg/database"
)

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Master *service.LeaveMaster
	Form   *service.CreateForm
	Detail *service.LeaveDetail
}

// ProvideStore opens the configured store backend.
func ProvideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return ProvideSQLiteStore(ctx, cfg, logger)
	case config.BackendLark:
		return ProvideLarkStore(cfg, logger), nil
	case config.BackendMongo:
		return mongo.NewStore(ctx, mongo.Config{
			URI:          cfg.Mongo.URI,
			Database:     cfg.Mongo.Database,
			LeaveTable:   cfg.Store.LeaveTable,
			HolidayTable: cfg.Store.HolidayTable,
		}, logger.Named("mongo"))
	default:
		return port.Store{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// ProvideSQLiteStore opens the database, applies migrations, seeds the
// configured holidays and wires the sqlite repositories.
func ProvideSQLiteStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.Store, error) {
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return port.Store{}, fmt.Errorf("failed to open database: %w", err)
	}

	fail := func(err error) (port.Store, error) {
		_ = db.Close()
		return port.Store{}, err
	}

	if err := database.NewMigrator(db, logger).RunMigrations(ctx); err != nil {
		return fail(fmt.Errorf("failed to run migrations: %w", err))
	}

	leaves, err := repository.NewLeaveRepository(db.DB, cfg.Store.LeaveTable, logger)
	if err != nil {
		return fail(err)
	}
	holidays, err := repository.NewHolidayRepository(db.DB, cfg.Store.HolidayTable, logger)
	if err != nil {
		return fail(err)
	}
	if err := seedHolidays(ctx, holidays, cfg.Database.Holidays, logger); err != nil {
		return fail(err)
	}

	return port.Store{
		Leaves:   leaves,
		Holidays: holidays,
		Schema:   repository.NewSchemaRepository(db.DB, cfg.Store.LeaveTable, logger),
		Close:    db.Close,
	}, nil
}

// ProvideLarkStore wires the Bitable repositories.
func ProvideLarkStore(cfg *config.Config, logger *zap.Logger) port.Store {
	return lark.NewStore(
		lark.Config{
			AppID:     cfg.Lark.AppID,
			AppSecret: cfg.Lark.AppSecret,
			AppToken:  cfg.Lark.AppToken,
		},
		lark.Tables{
			LeaveTableID:   cfg.LeaveTableID(),
			HolidayTableID: cfg.HolidayTableID(),
		},
		logger.Named("lark"),
	)
}

// ProvideServices creates the application services over a store.
func ProvideServices(store port.Store, logger *zap.Logger) *ServiceBundle {
	schema := service.NewSchemaProvider(store.Schema)
	return &ServiceBundle{
		Master: service.NewLeaveMaster(store.Leaves, logger),
		Form:   service.NewCreateForm(store.Leaves, store.Holidays, schema, logger),
		Detail: service.NewLeaveDetail(store.Leaves, schema, logger),
	}
}

// ProvideServer creates the HTTP server.
func ProvideServer(cfg *config.Config, services *ServiceBundle, store port.Store, health httpserver.HealthProbe, logger *zap.Logger) (*httpserver.Server, error) {
	return httpserver.NewServer(httpserver.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Mode:            cfg.Server.Mode,
	}, httpserver.Services{
		Master: services.Master,
		Form:   services.Form,
		Detail: services.Detail,
		Schema: store.Schema,
		Health: health,
	}, logger)
}

// seedHolidays fills an empty holiday table with the configured titles
func seedHolidays(ctx context.Context, repo *repository.HolidayRepository, titles []string, logger *zap.Logger) error {
	if len(titles) == 0 {
		return nil
	}
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read holidays: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, title := range titles {
		if _, err := repo.Add(ctx, title); err != nil {
			return fmt.Errorf("failed to seed holiday %q: %w", title, err)
		}
	}
	logger.Info("Seeded holidays", zap.Int("count", len(titles)))
	return nil
}
