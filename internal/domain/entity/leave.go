package entity

import "github.com/garyjia/leave-master/pkg/utils"

// LeaveRecord represents one row of the leave table
type LeaveRecord struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	LeaveType      string `json:"leave_type"`
	LeaveDate      string `json:"leave_date"`
	ApprovalStatus string `json:"approval_status"`
	Holiday        string `json:"holiday,omitempty"`
}

// MissingRequired returns the store names of required fields that are blank
func (r LeaveRecord) MissingRequired() []string {
	return utils.MissingFields(
		utils.RequiredField{Name: FieldTitle, Value: r.Title},
		utils.RequiredField{Name: FieldApprovalStatus, Value: r.ApprovalStatus},
		utils.RequiredField{Name: FieldLeaveDate, Value: r.LeaveDate},
		utils.RequiredField{Name: FieldLeaveType, Value: r.LeaveType},
	)
}

// Fields returns the store mapping used when inserting the record
func (r LeaveRecord) Fields() map[string]interface{} {
	return map[string]interface{}{
		FieldTitle:          r.Title,
		FieldApprovalStatus: r.ApprovalStatus,
		FieldLeaveDate:      r.LeaveDate,
		FieldLeaveType:      r.LeaveType,
		FieldHoliday:        r.Holiday,
	}
}

// LeavePatch is a partial update. Nil fields are left untouched.
type LeavePatch struct {
	Title          *string `json:"title,omitempty"`
	LeaveType      *string `json:"leave_type,omitempty"`
	LeaveDate      *string `json:"leave_date,omitempty"`
	ApprovalStatus *string `json:"approval_status,omitempty"`
	Holiday        *string `json:"holiday,omitempty"`
}

// FullPatch builds a patch carrying all five updatable fields of r
func FullPatch(r LeaveRecord) LeavePatch {
	return LeavePatch{
		Title:          &r.Title,
		LeaveType:      &r.LeaveType,
		LeaveDate:      &r.LeaveDate,
		ApprovalStatus: &r.ApprovalStatus,
		Holiday:        &r.Holiday,
	}
}

// IsEmpty reports whether the patch sets no field
func (p LeavePatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the store mapping of the fields set on the patch
func (p LeavePatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, 5)
	if p.Title != nil {
		fields[FieldTitle] = *p.Title
	}
	if p.ApprovalStatus != nil {
		fields[FieldApprovalStatus] = *p.ApprovalStatus
	}
	if p.LeaveDate != nil {
		fields[FieldLeaveDate] = *p.LeaveDate
	}
	if p.LeaveType != nil {
		fields[FieldLeaveType] = *p.LeaveType
	}
	if p.Holiday != nil {
		fields[FieldHoliday] = *p.Holiday
	}
	return fields
}

// Apply returns a copy of r with the patch applied
func (p LeavePatch) Apply(r LeaveRecord) LeaveRecord {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.LeaveType != nil {
		r.LeaveType = *p.LeaveType
	}
	if p.LeaveDate != nil {
		r.LeaveDate = *p.LeaveDate
	}
	if p.ApprovalStatus != nil {
		r.ApprovalStatus = *p.ApprovalStatus
	}
	if p.Holiday != nil {
		r.Holiday = *p.Holiday
	}
	return r
}

// LeaveFilter narrows a list read. Empty fields match everything.
type LeaveFilter struct {
	Title          string `form:"title" json:"title,omitempty"`
	LeaveType      string `form:"leave_type" json:"leave_type,omitempty"`
	ApprovalStatus string `form:"aproval" json:"approval_status,omitempty"`
}

// IsZero reports whether the filter matches every record
func (f LeaveFilter) IsZero() bool {
	return f.Title == "" && f.LeaveType == "" && f.ApprovalStatus == ""
}
