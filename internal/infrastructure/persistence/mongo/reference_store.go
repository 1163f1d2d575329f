package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// HolidayStore reads the holiday collection
type HolidayStore struct {
	holidays *mongo.Collection
}

// NewHolidayStore creates a holiday store for the given table
func NewHolidayStore(db *MongoDB, table string) *HolidayStore {
	return &HolidayStore{holidays: db.Collection(table)}
}

// List returns every holiday ordered by id
func (s *HolidayStore) List(ctx context.Context) ([]entity.HolidayOption, error) {
	cursor, err := s.holidays.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find holidays: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []holidayDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	holidays := make([]entity.HolidayOption, 0, len(docs))
	for _, doc := range docs {
		holidays = append(holidays, entity.HolidayOption{ID: doc.ID, Title: doc.Title})
	}
	return holidays, nil
}

// SchemaStore reads field definitions from the list_fields collection
type SchemaStore struct {
	fields *mongo.Collection
	table  string
}

// NewSchemaStore creates a schema reader for one list table
func NewSchemaStore(db *MongoDB, table string) *SchemaStore {
	return &SchemaStore{fields: db.Collection(fieldsCollection), table: table}
}

// Field returns the definition of one field
func (s *SchemaStore) Field(ctx context.Context, name string) (*entity.FieldSchema, error) {
	var doc fieldDocument
	err := s.fields.FindOne(ctx, bson.M{"table": s.table, "name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find field %s: %w", name, err)
	}

	schema := &entity.FieldSchema{Name: doc.Name, Type: doc.Type}
	if schema.IsChoice() {
		schema.Choices = append([]string{}, doc.Choices...)
	}
	return schema, nil
}

var (
	_ port.HolidayRepository = (*HolidayStore)(nil)
	_ port.SchemaReader      = (*SchemaStore)(nil)
)
