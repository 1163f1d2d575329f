package service

// AlertKind is the severity of a user-facing alert
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Message ids of the alerts raised by the services
const (
	MsgCreateSuccess  = "alert.create.success"
	MsgCreateFailed   = "alert.create.failed"
	MsgRequiredFields = "alert.required"
	MsgSaveSuccess    = "alert.save.success"
	MsgSaveFailed     = "alert.save.failed"
)

// Alert is a blocking notice shown after a write. Detail carries the
// error text of failed writes.
type Alert struct {
	Kind      AlertKind `json:"kind"`
	MessageID string    `json:"message_id"`
	Detail    string    `json:"detail,omitempty"`
}

func successAlert(id string) *Alert {
	return &Alert{Kind: AlertSuccess, MessageID: id}
}

func errorAlert(id string, err error) *Alert {
	a := &Alert{Kind: AlertError, MessageID: id}
	if err != nil {
		a.Detail = err.Error()
	}
	return a
}
