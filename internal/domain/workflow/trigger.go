package workflow

// Trigger is a user action on the detail view
type Trigger string

const (
	TriggerEdit   Trigger = "EDIT"
	TriggerSave   Trigger = "SAVE"
	TriggerCancel Trigger = "CANCEL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
