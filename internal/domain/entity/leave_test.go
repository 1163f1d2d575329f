package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaveRecord_MissingRequired(t *testing.T) {
	tests := []struct {
		name     string
		record   LeaveRecord
		expected []string
	}{
		{
			name:     "all required present",
			record:   LeaveRecord{Title: "A", LeaveType: "Sick", LeaveDate: "2024-01-10", ApprovalStatus: "Pending"},
			expected: nil,
		},
		{
			name:     "holiday is optional",
			record:   LeaveRecord{Title: "A", LeaveType: "Sick", LeaveDate: "2024-01-10", ApprovalStatus: "Pending", Holiday: ""},
			expected: nil,
		},
		{
			name:     "blank title",
			record:   LeaveRecord{Title: "  ", LeaveType: "Sick", LeaveDate: "2024-01-10", ApprovalStatus: "Pending"},
			expected: []string{FieldTitle},
		},
		{
			name:     "empty draft",
			record:   LeaveRecord{},
			expected: []string{FieldTitle, FieldApprovalStatus, FieldLeaveDate, FieldLeaveType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.MissingRequired())
		})
	}
}

func TestFullPatch_CarriesFiveUpdatableFields(t *testing.T) {
	record := LeaveRecord{ID: 7, Title: "B", LeaveType: "Annual", LeaveDate: "2024-02-01", ApprovalStatus: "Approved"}

	fields := FullPatch(record).Fields()

	assert.Len(t, fields, 5)
	assert.Equal(t, "B", fields[FieldTitle])
	assert.Equal(t, "Annual", fields[FieldLeaveType])
	assert.Equal(t, "2024-02-01", fields[FieldLeaveDate])
	assert.Equal(t, "Approved", fields[FieldApprovalStatus])
	assert.Equal(t, "", fields[FieldHoliday])
	assert.NotContains(t, fields, FieldID)
}

func TestLeavePatch_FieldsOnlySetValues(t *testing.T) {
	status := "Rejected"
	patch := LeavePatch{ApprovalStatus: &status}

	assert.Equal(t, map[string]interface{}{FieldApprovalStatus: "Rejected"}, patch.Fields())
	assert.False(t, patch.IsEmpty())
	assert.True(t, LeavePatch{}.IsEmpty())
}

func TestLeavePatch_Apply(t *testing.T) {
	original := LeaveRecord{ID: 3, Title: "C", LeaveType: "Sick", LeaveDate: "2024-03-01", ApprovalStatus: "Pending"}
	date := "2024-03-05"

	updated := LeavePatch{LeaveDate: &date}.Apply(original)

	assert.Equal(t, "2024-03-05", updated.LeaveDate)
	assert.Equal(t, original.Title, updated.Title)
	assert.Equal(t, "2024-03-01", original.LeaveDate, "apply must not mutate its input")
}

func TestLeaveFilter_IsZero(t *testing.T) {
	assert.True(t, LeaveFilter{}.IsZero())
	assert.False(t, LeaveFilter{LeaveType: "Sick"}.IsZero())
}
