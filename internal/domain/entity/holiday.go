package entity

// HolidayOption is a read-only entry of the holiday table
type HolidayOption struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
