package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
)

type schemaProvider struct {
	reader port.SchemaReader
}

// NewSchemaProvider adapts a SchemaReader to a SchemaProvider. Fields that
// are not choice fields yield an empty option list.
func NewSchemaProvider(reader port.SchemaReader) port.SchemaProvider {
	return &schemaProvider{reader: reader}
}

// OptionsFor returns the ordered choices of field
func (p *schemaProvider) OptionsFor(ctx context.Context, field string) ([]string, error) {
	schema, err := p.reader.Field(ctx, field)
	if err != nil {
		return nil, err
	}
	if !schema.IsChoice() {
		return []string{}, nil
	}
	return append([]string{}, schema.Choices...), nil
}

// loadChoices fetches options for field. Failures are logged and yield an
// empty list so the form stays usable.
func loadChoices(ctx context.Context, schema port.SchemaProvider, field string, logger *zap.Logger) []string {
	options, err := schema.OptionsFor(ctx, field)
	if err != nil {
		logger.Error("Failed to fetch field options", zap.String("field", field), zap.Error(err))
		return []string{}
	}
	if options == nil {
		return []string{}
	}
	return options
}
