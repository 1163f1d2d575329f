package entity

// Default table names in the list store
const (
	DefaultLeaveTable   = "leaves_master"
	DefaultHolidayTable = "Holiday_List_MD"
)

// Store field names for LeaveRecord. The approval column keeps the
// spelling it was deployed with.
const (
	FieldID             = "Id"
	FieldTitle          = "Title"
	FieldLeaveType      = "leave_type"
	FieldLeaveDate      = "leave_date"
	FieldApprovalStatus = "aproval"
	FieldHoliday        = "holidays"
)

// ListFields are the fields read for the leave list
var ListFields = []string{
	FieldID,
	FieldTitle,
	FieldLeaveType,
	FieldLeaveDate,
	FieldApprovalStatus,
}

// Field type constants returned by a schema read
const (
	FieldTypeText       = "text"
	FieldTypeChoice     = "choice"
	FieldTypeDate       = "date"
	FieldTypeNumber     = "number"
	FieldTypeAutoNumber = "autonumber"
)

// DateLayout is the wire layout of leave_date
const DateLayout = "2006-01-02"
