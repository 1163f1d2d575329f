package entity

// FieldSchema describes one field of a list store table
type FieldSchema struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Choices []string `json:"choices,omitempty"`
}

// IsChoice reports whether the field has an enumerated value set
func (f FieldSchema) IsChoice() bool {
	return f.Type == FieldTypeChoice
}
