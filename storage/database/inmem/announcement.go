package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/announcement"
)

type announcementRepository struct {
	db *DB
}

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a.ID = uuid.New().String()
	repo.db.announcements[a.ID] = &a
	return a, nil
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (announcement.Announcement, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.announcements[id]; ok {
		return *a, nil
	}
	return announcement.Announcement{}, announcement.ErrNotFound
}

func (repo *announcementRepository) QueryAnnouncementsByClass(ctx context.Context, classID string, sharedOnly bool) ([]announcement.Announcement, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	announcements := make([]announcement.Announcement, 0)
	for _, a := range repo.db.announcements {
		if a.ClassID != classID {
			continue
		}
		if sharedOnly && !a.IsShared {
			continue
		}
		announcements = append(announcements, *a)
	}
	sort.Slice(announcements, func(i, j int) bool { return announcements[i].CreatedAt.After(announcements[j].CreatedAt) })
	return announcements, nil
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.announcements[a.ID]
	if !ok {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	orig.Title = a.Title
	orig.Content = a.Content
	orig.IsShared = a.IsShared
	return *orig, nil
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.announcements, id)
	return nil
}
