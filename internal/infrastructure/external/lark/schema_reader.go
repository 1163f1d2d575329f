package lark

import (
	"context"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// SchemaReader reads field definitions of a Bitable table
type SchemaReader struct {
	api     tableAPI
	tableID string
}

// NewSchemaReader creates a schema reader for one Bitable table
func NewSchemaReader(api *BitableAPI, tableID string) *SchemaReader {
	return &SchemaReader{api: api, tableID: tableID}
}

// Field returns the named field. Select options keep the table's order.
func (s *SchemaReader) Field(ctx context.Context, name string) (*entity.FieldSchema, error) {
	fields, err := s.api.ListFields(ctx, s.tableID)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		if derefString(field.FieldName) != name {
			continue
		}

		schema := &entity.FieldSchema{Name: name, Type: entity.FieldTypeText}
		if field.Type != nil {
			schema.Type = fieldTypeName(*field.Type)
		}
		if schema.IsChoice() {
			schema.Choices = []string{}
			if field.Property != nil {
				for _, option := range field.Property.Options {
					if option != nil && option.Name != nil {
						schema.Choices = append(schema.Choices, *option.Name)
					}
				}
			}
		}
		return schema, nil
	}
	return nil, port.ErrNotFound
}

var _ port.SchemaReader = (*SchemaReader)(nil)
