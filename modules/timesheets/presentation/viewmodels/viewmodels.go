package viewmodels

type DailySheet struct {
	ID          string
	UserID      string
	UserName    string
	Date        string
	ProjectID   string
	ProjectName string
	TaskID      string
	TaskTitle   string
	Hours       string
	Note        string
}

type Day struct {
	Date string
	// Weekday is the short English name, used as a translation key.
	Weekday string
	Total   string
	Over    bool
	Today   bool
}

type Week struct {
	Start string
	End   string
	Prev  string
	Next  string
	Days  []Day
	Total string
}

// Option is one entry of a picker.
type Option struct {
	Value string
	Label string
}
