package viewmodels

type Request struct {
	ID              string
	UserID          string
	UserName        string
	Type            string
	StartDate       string
	EndDate         string
	Days            string
	Reason          string
	Status          string
	DecidedBy       string
	DecisionComment string
	DecidedAt       string
	CreatedAt       string
	Pending         bool
}
