package mappers

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/activity"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/constants"
)

func id(v int64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.DateFormat)
}

func ProjectToViewModel(p project.Project) viewmodels.Project {
	return viewmodels.Project{
		ID:           id(p.ID),
		Name:         p.Name,
		Code:         p.Code,
		Description:  p.Description,
		Status:       string(p.Status),
		StartDate:    date(p.StartDate),
		EndDate:      date(p.EndDate),
		ManagerID:    id(p.ManagerID),
		ManagerName:  p.ManagerName,
		MembersCount: p.MembersCount,
	}
}

func MemberToViewModel(m project.Member) viewmodels.Member {
	return viewmodels.Member{
		UserID: id(m.UserID),
		Name:   m.Name,
		Email:  m.Email,
		Role:   m.Role,
	}
}

func MainTaskToViewModel(m maintask.MainTask) viewmodels.MainTask {
	return viewmodels.MainTask{
		ID:          id(m.ID),
		ProjectID:   id(m.ProjectID),
		Title:       m.Title,
		Description: m.Description,
		DueDate:     date(m.DueDate),
		Weight:      m.Weight,
		Progress:    m.Progress,
		TasksCount:  m.TasksCount,
	}
}

// TaskToViewModel flags overdue tasks relative to now.
func TaskToViewModel(t task.Task, now time.Time) viewmodels.Task {
	vm := viewmodels.Task{
		ID:            id(t.ID),
		ProjectID:     id(t.ProjectID),
		ProjectName:   t.ProjectName,
		MainTaskID:    id(t.MainTaskID),
		MainTaskTitle: t.MainTaskTitle,
		ParentID:      id(t.ParentID),
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		DueDate:       date(t.DueDate),
		Progress:      t.Progress,
		SubTasksCount: t.SubTasksCount,
	}
	if !t.EstimateHours.IsZero() {
		vm.EstimateHours = t.EstimateHours.StringFixed(1)
	}
	if !t.DueDate.IsZero() && t.Status.IsOpen() {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.DueDate.Location())
		vm.Overdue = t.DueDate.Before(today)
	}
	for _, a := range t.Assignees {
		vm.Assignees = append(vm.Assignees, viewmodels.Assignee{UserID: id(a.UserID), Name: a.Name})
	}
	return vm
}

func TasksToViewModels(tasks []task.Task, now time.Time) []viewmodels.Task {
	out := make([]viewmodels.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskToViewModel(t, now))
	}
	return out
}

func FileToViewModel(f file.File) viewmodels.File {
	vm := viewmodels.File{
		ID:         id(f.ID),
		ProjectID:  id(f.ProjectID),
		Name:       f.Name,
		Size:       humanize.Bytes(uint64(max(f.Size, 0))),
		MimeType:   f.MimeType,
		Kind:       string(f.Kind()),
		UploadedBy: f.UploadedBy,
	}
	if !f.CreatedAt.IsZero() {
		vm.CreatedAt = f.CreatedAt.Format(constants.DateTimeFormat)
	}
	return vm
}

func ActivityToViewModel(a activity.Activity) viewmodels.Activity {
	vm := viewmodels.Activity{
		ID:        id(a.ID),
		Action:    a.Action,
		ActorName: a.ActorName,
		Subject:   a.Subject,
		Message:   a.Message,
	}
	if !a.CreatedAt.IsZero() {
		vm.CreatedAt = a.CreatedAt.Format(constants.DateTimeFormat)
	}
	return vm
}
