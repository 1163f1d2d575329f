package lark

import (
	"context"
	"encoding/json"
	"fmt"

	larkbitable "github.com/larksuite/oapi-sdk-go/v3/service/bitable/v1"
	"go.uber.org/zap"
)

const pageSize = 100

// tableAPI is the subset of the Bitable API used by the repositories
type tableAPI interface {
	ListRecords(ctx context.Context, tableID string, fieldNames []string, filter string) ([]*larkbitable.AppTableRecord, error)
	GetRecord(ctx context.Context, tableID, recordID string) (*larkbitable.AppTableRecord, error)
	CreateRecord(ctx context.Context, tableID string, fields map[string]interface{}) (*larkbitable.AppTableRecord, error)
	UpdateRecord(ctx context.Context, tableID, recordID string, fields map[string]interface{}) error
	ListFields(ctx context.Context, tableID string) ([]*larkbitable.AppTableField, error)
}

// BitableAPI handles Bitable record and field operations
type BitableAPI struct {
	client *SDKClient
	logger *zap.Logger
}

// NewBitableAPI creates a new Bitable API handler
func NewBitableAPI(client *SDKClient, logger *zap.Logger) *BitableAPI {
	return &BitableAPI{
		client: client,
		logger: logger,
	}
}

// ListRecords returns every record of the table matching filter, following page tokens
func (a *BitableAPI) ListRecords(ctx context.Context, tableID string, fieldNames []string, filter string) ([]*larkbitable.AppTableRecord, error) {
	var names string
	if len(fieldNames) > 0 {
		encoded, err := json.Marshal(fieldNames)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field names: %w", err)
		}
		names = string(encoded)
	}

	var (
		records   []*larkbitable.AppTableRecord
		pageToken string
	)
	for {
		builder := larkbitable.NewListAppTableRecordReqBuilder().
			AppToken(a.client.AppToken()).
			TableId(tableID).
			PageSize(pageSize)
		if names != "" {
			builder = builder.FieldNames(names)
		}
		if filter != "" {
			builder = builder.Filter(filter)
		}
		if pageToken != "" {
			builder = builder.PageToken(pageToken)
		}

		resp, err := a.client.client.Bitable.AppTableRecord.List(ctx, builder.Build())
		if err != nil {
			a.logger.Error("Failed to list records",
				zap.String("table_id", tableID),
				zap.Error(err))
			return nil, fmt.Errorf("failed to list records: %w", err)
		}
		if !resp.Success() {
			a.logger.Error("API returned failure",
				zap.String("table_id", tableID),
				zap.Int("code", resp.Code),
				zap.String("msg", resp.Msg))
			return nil, fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
		}
		if resp.Data == nil {
			break
		}

		records = append(records, resp.Data.Items...)
		if resp.Data.HasMore == nil || !*resp.Data.HasMore || derefString(resp.Data.PageToken) == "" {
			break
		}
		pageToken = *resp.Data.PageToken
	}

	return records, nil
}

// GetRecord retrieves one record by its Bitable record id
func (a *BitableAPI) GetRecord(ctx context.Context, tableID, recordID string) (*larkbitable.AppTableRecord, error) {
	req := larkbitable.NewGetAppTableRecordReqBuilder().
		AppToken(a.client.AppToken()).
		TableId(tableID).
		RecordId(recordID).
		Build()

	resp, err := a.client.client.Bitable.AppTableRecord.Get(ctx, req)
	if err != nil {
		a.logger.Error("Failed to get record",
			zap.String("table_id", tableID),
			zap.String("record_id", recordID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	if !resp.Success() {
		return nil, fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}
	if resp.Data == nil || resp.Data.Record == nil {
		return nil, fmt.Errorf("record %s not returned", recordID)
	}
	return resp.Data.Record, nil
}

// CreateRecord inserts a record and returns it as stored
func (a *BitableAPI) CreateRecord(ctx context.Context, tableID string, fields map[string]interface{}) (*larkbitable.AppTableRecord, error) {
	req := larkbitable.NewCreateAppTableRecordReqBuilder().
		AppToken(a.client.AppToken()).
		TableId(tableID).
		AppTableRecord(larkbitable.NewAppTableRecordBuilder().
			Fields(fields).
			Build()).
		Build()

	resp, err := a.client.client.Bitable.AppTableRecord.Create(ctx, req)
	if err != nil {
		a.logger.Error("Failed to create record",
			zap.String("table_id", tableID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	if !resp.Success() {
		a.logger.Error("API returned failure",
			zap.String("table_id", tableID),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return nil, fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}
	if resp.Data == nil || resp.Data.Record == nil {
		return nil, fmt.Errorf("created record not returned")
	}
	return resp.Data.Record, nil
}

// UpdateRecord overwrites the given fields of one record
func (a *BitableAPI) UpdateRecord(ctx context.Context, tableID, recordID string, fields map[string]interface{}) error {
	req := larkbitable.NewUpdateAppTableRecordReqBuilder().
		AppToken(a.client.AppToken()).
		TableId(tableID).
		RecordId(recordID).
		AppTableRecord(larkbitable.NewAppTableRecordBuilder().
			Fields(fields).
			Build()).
		Build()

	resp, err := a.client.client.Bitable.AppTableRecord.Update(ctx, req)
	if err != nil {
		a.logger.Error("Failed to update record",
			zap.String("table_id", tableID),
			zap.String("record_id", recordID),
			zap.Error(err))
		return fmt.Errorf("failed to update record: %w", err)
	}
	if !resp.Success() {
		a.logger.Error("API returned failure",
			zap.String("record_id", recordID),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}
	return nil
}

// ListFields returns the field definitions of a table
func (a *BitableAPI) ListFields(ctx context.Context, tableID string) ([]*larkbitable.AppTableField, error) {
	var (
		fields    []*larkbitable.AppTableField
		pageToken string
	)
	for {
		builder := larkbitable.NewListAppTableFieldReqBuilder().
			AppToken(a.client.AppToken()).
			TableId(tableID).
			PageSize(pageSize)
		if pageToken != "" {
			builder = builder.PageToken(pageToken)
		}

		resp, err := a.client.client.Bitable.AppTableField.List(ctx, builder.Build())
		if err != nil {
			a.logger.Error("Failed to list fields",
				zap.String("table_id", tableID),
				zap.Error(err))
			return nil, fmt.Errorf("failed to list fields: %w", err)
		}
		if !resp.Success() {
			return nil, fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
		}
		if resp.Data == nil {
			break
		}

		fields = append(fields, resp.Data.Items...)
		if resp.Data.HasMore == nil || !*resp.Data.HasMore || derefString(resp.Data.PageToken) == "" {
			break
		}
		pageToken = *resp.Data.PageToken
	}
	return fields, nil
}

var _ tableAPI = (*BitableAPI)(nil)
