package view

import (
	"strconv"

	"github.com/garyjia/leave-master/internal/domain/entity"
)

// Column headers of the leave table, as message ids
const (
	ColumnTitle          = "list.column.title"
	ColumnLeaveType      = "list.column.leave_type"
	ColumnLeaveDate      = "list.column.leave_date"
	ColumnApprovalStatus = "list.column.approval_status"
	ColumnEdit           = "list.column.edit"
)

// Columns is the fixed column order of the leave table
var Columns = []string{
	ColumnTitle,
	ColumnLeaveType,
	ColumnLeaveDate,
	ColumnApprovalStatus,
	ColumnEdit,
}

// ListRow is one rendered leave row
type ListRow struct {
	ID             int64
	Title          string
	LeaveType      string
	LeaveDate      string
	ApprovalStatus string
	EditHref       string
}

// ListView is what the list template draws. Exactly one of Spinner,
// Empty or a non-empty Rows is set.
type ListView struct {
	Spinner bool
	Empty   bool
	Columns []string
	Rows    []ListRow
}

// RenderList builds the list view. While loading only the spinner is
// shown, whatever records holds.
func RenderList(records []entity.LeaveRecord, loading bool) ListView {
	if loading {
		return ListView{Spinner: true}
	}
	if len(records) == 0 {
		return ListView{Empty: true}
	}

	rows := make([]ListRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ListRow{
			ID:             r.ID,
			Title:          r.Title,
			LeaveType:      r.LeaveType,
			LeaveDate:      r.LeaveDate,
			ApprovalStatus: r.ApprovalStatus,
			EditHref:       EditHref(r.ID),
		})
	}
	return ListView{Columns: Columns, Rows: rows}
}

// EditHref is the detail route of a record
func EditHref(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}
