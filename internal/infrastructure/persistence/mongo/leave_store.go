package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

const (
	countersCollection = "counters"
	fieldsCollection   = "list_fields"
)

// leaveCollection is the part of *mongo.Collection the leave store uses
type leaveCollection interface {
	Find(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
	Indexes() mongo.IndexView
}

// counterCollection hands out sequence values
type counterCollection interface {
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
}

// LeaveStore implements port.LeaveRepository on a collection named after the list table
type LeaveStore struct {
	leaves   leaveCollection
	counters counterCollection
	table    string
	logger   *zap.Logger
}

// NewLeaveStore creates a leave store for the given table
func NewLeaveStore(db *MongoDB, table string, logger *zap.Logger) *LeaveStore {
	return newLeaveStore(db.Collection(table), db.Collection(countersCollection), table, logger)
}

func newLeaveStore(leaves leaveCollection, counters counterCollection, table string, logger *zap.Logger) *LeaveStore {
	return &LeaveStore{
		leaves:   leaves,
		counters: counters,
		table:    table,
		logger:   logger,
	}
}

// EnsureIndexes creates the filter indexes of the leave collection
func (s *LeaveStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.leaves.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: entity.FieldApprovalStatus, Value: 1}}},
		{Keys: bson.D{{Key: entity.FieldLeaveType, Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create %s indexes: %w", s.table, err)
	}
	return nil
}

// List returns all records matching filter ordered by id
func (s *LeaveStore) List(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.D{
			{Key: entity.FieldTitle, Value: 1},
			{Key: entity.FieldLeaveType, Value: 1},
			{Key: entity.FieldLeaveDate, Value: 1},
			{Key: entity.FieldApprovalStatus, Value: 1},
		})

	cursor, err := s.leaves.Find(ctx, leaveQuery(filter), opts)
	if err != nil {
		s.logger.Error("Failed to list leave records", zap.Error(err))
		return nil, fmt.Errorf("find leave records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []leaveDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leave records: %w", err)
	}

	records := make([]entity.LeaveRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toEntity())
	}
	return records, nil
}

// Get returns the record with the given identifier
func (s *LeaveStore) Get(ctx context.Context, id int64) (*entity.LeaveRecord, error) {
	var doc leaveDocument
	err := s.leaves.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to get leave record", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("find leave record: %w", err)
	}
	rec := doc.toEntity()
	return &rec, nil
}

// Create assigns the next identifier from the counters collection and inserts the record
func (s *LeaveStore) Create(ctx context.Context, record *entity.LeaveRecord) (int64, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return 0, err
	}

	if _, err := s.leaves.InsertOne(ctx, newLeaveDocument(id, *record)); err != nil {
		s.logger.Error("Failed to create leave record", zap.Error(err))
		return 0, fmt.Errorf("insert leave record: %w", err)
	}
	return id, nil
}

// Update sets the patched fields of one record
func (s *LeaveStore) Update(ctx context.Context, id int64, patch entity.LeavePatch) error {
	set := bson.M{}
	for k, v := range patch.Fields() {
		set[k] = v
	}
	if len(set) == 0 {
		// Nothing to write; still report a missing row
		_, err := s.Get(ctx, id)
		return err
	}

	res, err := s.leaves.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error("Failed to update leave record", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("update leave record: %w", err)
	}
	if res.MatchedCount == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *LeaveStore) nextID(ctx context.Context) (int64, error) {
	var counter counterDocument
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": s.table},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", s.table, err)
	}
	return counter.Value, nil
}

// leaveQuery translates a LeaveFilter into a mongo filter document
func leaveQuery(filter entity.LeaveFilter) bson.M {
	query := bson.M{}
	if filter.Title != "" {
		query[entity.FieldTitle] = bson.M{"$regex": regexp.QuoteMeta(filter.Title), "$options": "i"}
	}
	if filter.LeaveType != "" {
		query[entity.FieldLeaveType] = filter.LeaveType
	}
	if filter.ApprovalStatus != "" {
		query[entity.FieldApprovalStatus] = filter.ApprovalStatus
	}
	return query
}

var _ port.LeaveRepository = (*LeaveStore)(nil)
