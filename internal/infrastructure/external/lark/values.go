package lark

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/leave-master/internal/domain/entity"
)

// Bitable field type codes
const (
	fieldTypeText         = 1
	fieldTypeNumber       = 2
	fieldTypeSingleSelect = 3
	fieldTypeMultiSelect  = 4
	fieldTypeDateTime     = 5
	fieldTypeAutoNumber   = 1005
)

// fieldTypeName maps a Bitable type code to the store-neutral type name
func fieldTypeName(code int) string {
	switch code {
	case fieldTypeSingleSelect, fieldTypeMultiSelect:
		return entity.FieldTypeChoice
	case fieldTypeDateTime:
		return entity.FieldTypeDate
	case fieldTypeNumber:
		return entity.FieldTypeNumber
	case fieldTypeAutoNumber:
		return entity.FieldTypeAutoNumber
	default:
		return entity.FieldTypeText
	}
}

// textValue flattens a Bitable cell value into a string. Text cells may come
// back as rich-text segments, select cells as strings or string lists.
func textValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := textValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "")
	case map[string]interface{}:
		if text, ok := val["text"]; ok {
			return textValue(text)
		}
		if value, ok := val["value"]; ok {
			return textValue(value)
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// dateValue reads a leave date. DateTime cells are unix milliseconds,
// text cells are already YYYY-MM-DD.
func dateValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return time.UnixMilli(int64(val)).UTC().Format(entity.DateLayout)
	case int64:
		return time.UnixMilli(val).UTC().Format(entity.DateLayout)
	default:
		return textValue(v)
	}
}

// dateCell converts a YYYY-MM-DD leave date into the unix milliseconds a
// DateTime cell expects. Blank clears the cell; unparsable text is sent as is.
func dateCell(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(entity.DateLayout, s, time.UTC)
	if err != nil {
		return s
	}
	return t.UnixMilli()
}

// cellFields maps store fields to the values Bitable accepts on write
func cellFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok && k == entity.FieldLeaveDate {
			out[k] = dateCell(s)
			continue
		}
		out[k] = v
	}
	return out
}

// idValue parses the auto-number identifier of a record
func idValue(v interface{}) (int64, error) {
	s := strings.TrimSpace(textValue(v))
	if s == "" {
		return 0, fmt.Errorf("record has no %s value", entity.FieldID)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", entity.FieldID, s, err)
	}
	return id, nil
}

// quote renders a string literal for a Bitable filter formula
func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

// leaveFilterFormula translates a LeaveFilter into a filter formula
func leaveFilterFormula(filter entity.LeaveFilter) string {
	var terms []string
	if filter.Title != "" {
		terms = append(terms, fmt.Sprintf("CurrentValue.[%s].contains(%s)", entity.FieldTitle, quote(filter.Title)))
	}
	if filter.LeaveType != "" {
		terms = append(terms, fmt.Sprintf("CurrentValue.[%s]=%s", entity.FieldLeaveType, quote(filter.LeaveType)))
	}
	if filter.ApprovalStatus != "" {
		terms = append(terms, fmt.Sprintf("CurrentValue.[%s]=%s", entity.FieldApprovalStatus, quote(filter.ApprovalStatus)))
	}

	switch len(terms) {
	case 0:
		return ""
	case 1:
		return terms[0]
	default:
		return "AND(" + strings.Join(terms, ",") + ")"
	}
}

// idFormula matches the record with the given auto-number identifier
func idFormula(id int64) string {
	return fmt.Sprintf("CurrentValue.[%s]=%s", entity.FieldID, quote(strconv.FormatInt(id, 10)))
}

// derefString safely dereferences a string pointer
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
