package lark

import (
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
)

// Tables names the Bitable tables backing the leave store
type Tables struct {
	LeaveTableID   string
	HolidayTableID string
}

// NewStore wires the Bitable repositories behind the store ports
func NewStore(cfg Config, tables Tables, logger *zap.Logger) port.Store {
	api := NewBitableAPI(NewSDKClient(cfg, logger), logger)

	return port.Store{
		Leaves:   NewLeaveRepository(api, tables.LeaveTableID, logger),
		Holidays: NewHolidayRepository(api, tables.HolidayTableID, logger),
		Schema:   NewSchemaReader(api, tables.LeaveTableID),
		Close:    func() error { return nil },
	}
}
