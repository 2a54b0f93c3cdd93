package planner

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("planner note not found")

type (
	Repository interface {
		CreateNote(ctx context.Context, n Note) (Note, error)
		GetNoteByID(ctx context.Context, id string) (Note, error)
		QueryNotesByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]Note, error)
		QuerySharedNotesByClass(ctx context.Context, classID string) ([]Note, error)
		UpdateNote(ctx context.Context, n Note) (Note, error)
		DeleteNote(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nn NewNote, teacherID string) (Note, error)
		GetByID(ctx context.Context, id string) (Note, error)
		QueryByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]Note, error)
		QuerySharedByClass(ctx context.Context, classID string) ([]Note, error)
		Update(ctx context.Context, id string, nn NewNote) (Note, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nn NewNote, teacherID string) (Note, error) {
	isPrivate := true
	if nn.IsPrivate != nil {
		isPrivate = *nn.IsPrivate
	}
	n := Note{
		TeacherID: teacherID,
		ClassID:   nn.ClassID,
		Date:      nn.Date.UTC(),
		Title:     nn.Title,
		Content:   nn.Content,
		IsPrivate: isPrivate,
		Urgency:   nn.Urgency,
	}
	return svc.repo.CreateNote(ctx, n)
}

func (svc *service) GetByID(ctx context.Context, id string) (Note, error) {
	return svc.repo.GetNoteByID(ctx, id)
}

func (svc *service) QueryByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]Note, error) {
	return svc.repo.QueryNotesByTeacher(ctx, teacherID, from, to)
}

func (svc *service) QuerySharedByClass(ctx context.Context, classID string) ([]Note, error) {
	return svc.repo.QuerySharedNotesByClass(ctx, classID)
}

func (svc *service) Update(ctx context.Context, id string, nn NewNote) (Note, error) {
	n, err := svc.repo.GetNoteByID(ctx, id)
	if err != nil {
		return Note{}, err
	}
	n.ClassID = nn.ClassID
	n.Date = nn.Date.UTC()
	n.Title = nn.Title
	n.Content = nn.Content
	if nn.IsPrivate != nil {
		n.IsPrivate = *nn.IsPrivate
	}
	n.Urgency = nn.Urgency
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteNote(ctx, id)
}
