package announcement

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("announcement not found")

type (
	Repository interface {
		CreateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		QueryAnnouncementsByClass(ctx context.Context, classID string, sharedOnly bool) ([]Announcement, error)
		UpdateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, na NewAnnouncement, classID, teacherID string) (Announcement, error)
		GetByID(ctx context.Context, id string) (Announcement, error)
		// QueryByClass returns shared announcements only unless the caller
		// owns the class.
		QueryByClass(ctx context.Context, classID string, sharedOnly bool) ([]Announcement, error)
		Share(ctx context.Context, id string, shared bool) (Announcement, error)
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

func (svc *service) Create(ctx context.Context, na NewAnnouncement, classID, teacherID string) (Announcement, error) {
	a := Announcement{
		ClassID:   classID,
		TeacherID: teacherID,
		Title:     na.Title,
		Content:   na.Content,
		IsShared:  na.IsShared,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateAnnouncement(ctx, a)
}

func (svc *service) GetByID(ctx context.Context, id string) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(ctx, id)
}

func (svc *service) QueryByClass(ctx context.Context, classID string, sharedOnly bool) ([]Announcement, error) {
	return svc.repo.QueryAnnouncementsByClass(ctx, classID, sharedOnly)
}

func (svc *service) Share(ctx context.Context, id string, shared bool) (Announcement, error) {
	a, err := svc.repo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	a.IsShared = shared
	return svc.repo.UpdateAnnouncement(ctx, a)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAnnouncement(ctx, id)
}
