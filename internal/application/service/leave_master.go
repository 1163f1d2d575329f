package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// ListState is the state the container hands to the list view
type ListState struct {
	Records []entity.LeaveRecord `json:"records"`
	Loading bool                 `json:"loading"`
	Failed  bool                 `json:"failed"`
}

// NewListState returns the state before the list is fetched
func NewListState() ListState {
	return ListState{Loading: true}
}

// LeaveMaster owns the leave collection shown on the data page
type LeaveMaster struct {
	leaves port.LeaveRepository
	logger *zap.Logger
}

// NewLeaveMaster creates a new LeaveMaster
func NewLeaveMaster(leaves port.LeaveRepository, logger *zap.Logger) *LeaveMaster {
	return &LeaveMaster{
		leaves: leaves,
		logger: logger.Named("leave_master"),
	}
}

// Mount fetches the list once. A failed fetch is logged and yields an
// empty, failed state. The only error returned is ErrStale.
func (s *LeaveMaster) Mount(ctx context.Context, filter entity.LeaveFilter) (ListState, error) {
	records, err := s.List(ctx, filter)
	if err == ErrStale {
		return ListState{}, err
	}
	if err != nil {
		s.logger.Error("Failed to load leave list", zap.Error(err))
		return ListState{Failed: true}, nil
	}
	return ListState{Records: records}, nil
}

// List returns the records matching filter
func (s *LeaveMaster) List(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error) {
	records, err := s.leaves.List(ctx, filter)
	if stale(ctx) {
		s.logger.Debug("Discarding stale list response", zap.Int("records", len(records)))
		return nil, ErrStale
	}
	if err != nil {
		return nil, &FetchError{Op: "list leaves", Err: err}
	}
	if records == nil {
		records = []entity.LeaveRecord{}
	}
	return records, nil
}
