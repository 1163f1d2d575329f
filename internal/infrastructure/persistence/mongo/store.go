package mongo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
)

// Config holds the MongoDB backend configuration
type Config struct {
	URI          string
	Database     string
	LeaveTable   string
	HolidayTable string
}

// NewStore connects to MongoDB and wires the store ports
func NewStore(ctx context.Context, cfg Config, logger *zap.Logger) (port.Store, error) {
	db, err := Connect(cfg.URI, cfg.Database, logger)
	if err != nil {
		return port.Store{}, err
	}

	leaves := NewLeaveStore(db, cfg.LeaveTable, logger)
	if err := leaves.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return port.Store{}, err
	}

	return port.Store{
		Leaves:   leaves,
		Holidays: NewHolidayStore(db, cfg.HolidayTable),
		Schema:   NewSchemaStore(db, cfg.LeaveTable),
		Close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Close(ctx)
		},
	}, nil
}
