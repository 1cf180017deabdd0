package persistence

import (
	"time"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/activity"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/mapping"
)

// parseDate reads the backend's YYYY-MM-DD dates; anything else is zero.
func parseDate(s string) time.Time {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ToDomainProject(m models.Project) project.Project {
	p := project.Project{
		ID:           m.ID,
		Name:         m.Name,
		Code:         m.Code,
		Description:  m.Description,
		Status:       project.Status(m.Status),
		StartDate:    parseDate(m.StartDate),
		EndDate:      parseDate(m.EndDate),
		ManagerID:    m.ManagerID,
		MembersCount: m.MembersCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Manager != nil {
		p.ManagerName = m.Manager.Name
		if p.ManagerID == 0 {
			p.ManagerID = m.Manager.ID
		}
	}
	return p
}

func ToDomainMember(m models.Member) project.Member {
	return project.Member{UserID: m.UserID, Name: m.Name, Email: m.Email, Role: m.Role}
}

func ToDomainMainTask(m models.MainTask) maintask.MainTask {
	return maintask.MainTask{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     parseDate(m.DueDate),
		Weight:      m.Weight,
		Progress:    m.Progress,
		TasksCount:  m.TasksCount,
		CreatedAt:   m.CreatedAt,
	}
}

func ToDomainTask(m models.Task) task.Task {
	t := task.Task{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		MainTaskID:    m.MainTaskID,
		ParentID:      m.ParentID,
		Title:         m.Title,
		Description:   m.Description,
		Priority:      task.Priority(m.Priority),
		Status:        task.Status(m.Status),
		DueDate:       parseDate(m.DueDate),
		EstimateHours: m.EstimateHours,
		Progress:      m.Progress,
		SubTasksCount: m.SubTasksCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Project != nil {
		t.ProjectName = m.Project.Name
		if t.ProjectID == 0 {
			t.ProjectID = m.Project.ID
		}
	}
	if m.MainTask != nil {
		t.MainTaskTitle = m.MainTask.Title
		if t.MainTaskID == 0 {
			t.MainTaskID = m.MainTask.ID
		}
	}
	for _, a := range m.Assignees {
		t.Assignees = append(t.Assignees, task.Assignee{UserID: a.ID, Name: a.Name})
	}
	return t
}

func ToDomainFile(m models.File) file.File {
	f := file.File{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Name:      m.Name,
		Size:      m.Size,
		MimeType:  m.MimeType,
		CreatedAt: m.CreatedAt,
	}
	if m.UploadedBy != nil {
		f.UploadedBy = m.UploadedBy.Name
	}
	return f
}

func ToDomainActivity(m models.Activity) activity.Activity {
	a := activity.Activity{
		ID:        m.ID,
		Action:    m.Action,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
	if m.Actor != nil {
		a.ActorID = m.Actor.ID
		a.ActorName = m.Actor.Name
	}
	return a
}

func ToDomainProjects(items []models.Project) []project.Project {
	return mapping.MapViewModels(items, ToDomainProject)
}

func ToDomainTasks(items []models.Task) []task.Task {
	return mapping.MapViewModels(items, ToDomainTask)
}
