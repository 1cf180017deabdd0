package viewmodels

type Project struct {
	ID           string
	Name         string
	Code         string
	Description  string
	Status       string
	StartDate    string
	EndDate      string
	ManagerID    string
	ManagerName  string
	MembersCount int
}

type Member struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

type MainTask struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	DueDate     string
	Weight      int
	Progress    int
	TasksCount  int
}

type Assignee struct {
	UserID string
	Name   string
}

type Task struct {
	ID            string
	ProjectID     string
	ProjectName   string
	MainTaskID    string
	MainTaskTitle string
	ParentID      string
	Title         string
	Description   string
	Priority      string
	Status        string
	DueDate       string
	EstimateHours string
	Progress      int
	Assignees     []Assignee
	SubTasksCount int
	// Overdue marks open tasks past their due date.
	Overdue bool
}

func (t Task) IsSubTask() bool {
	return t.ParentID != ""
}

func (t Task) AssigneeNames() []string {
	out := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		out = append(out, a.Name)
	}
	return out
}

type File struct {
	ID         string
	ProjectID  string
	Name       string
	Size       string
	MimeType   string
	Kind       string
	UploadedBy string
	CreatedAt  string
}

type Activity struct {
	ID        string
	Action    string
	ActorName string
	Subject   string
	Message   string
	CreatedAt string
}

// Option is one entry of a picker.
type Option struct {
	Value string
	Label string
}
