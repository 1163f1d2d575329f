package mongo

import "github.com/garyjia/leave-master/internal/domain/entity"

// leaveDocument is the stored shape of a leave record. Keys follow the
// list store field names.
type leaveDocument struct {
	ID             int64  `bson:"_id"`
	Title          string `bson:"Title"`
	LeaveType      string `bson:"leave_type"`
	LeaveDate      string `bson:"leave_date"`
	ApprovalStatus string `bson:"aproval"`
	Holiday        string `bson:"holidays"`
}

func (d leaveDocument) toEntity() entity.LeaveRecord {
	return entity.LeaveRecord{
		ID:             d.ID,
		Title:          d.Title,
		LeaveType:      d.LeaveType,
		LeaveDate:      d.LeaveDate,
		ApprovalStatus: d.ApprovalStatus,
		Holiday:        d.Holiday,
	}
}

func newLeaveDocument(id int64, r entity.LeaveRecord) leaveDocument {
	return leaveDocument{
		ID:             id,
		Title:          r.Title,
		LeaveType:      r.LeaveType,
		LeaveDate:      r.LeaveDate,
		ApprovalStatus: r.ApprovalStatus,
		Holiday:        r.Holiday,
	}
}

type holidayDocument struct {
	ID    int64  `bson:"_id"`
	Title string `bson:"Title"`
}

// fieldDocument describes one field of a list table
type fieldDocument struct {
	Table   string   `bson:"table"`
	Name    string   `bson:"name"`
	Type    string   `bson:"type"`
	Choices []string `bson:"choices,omitempty"`
}

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}
