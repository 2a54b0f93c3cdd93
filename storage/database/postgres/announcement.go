package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/announcement"
)

type announcementRow struct {
	ID        string    `db:"id"`
	ClassID   string    `db:"class_id"`
	TeacherID string    `db:"teacher_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	IsShared  bool      `db:"is_shared"`
	CreatedAt time.Time `db:"created_at"`
}

func (r announcementRow) toModel() announcement.Announcement {
	return announcement.Announcement{
		ID:        r.ID,
		ClassID:   r.ClassID,
		TeacherID: r.TeacherID,
		Title:     r.Title,
		Content:   r.Content,
		IsShared:  r.IsShared,
		CreatedAt: r.CreatedAt,
	}
}

type announcementRepository struct {
	db *sqlx.DB
}

var _ announcement.Repository = (*announcementRepository)(nil)

func NewAnnouncementRepository(db *sqlx.DB) *announcementRepository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	a.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO announcement (id, class_id, teacher_id, title, content, is_shared, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ClassID, a.TeacherID, a.Title, a.Content, a.IsShared, a.CreatedAt)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	return a, nil
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (announcement.Announcement, error) {
	var row announcementRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM announcement WHERE id = $1`, id)
	if err != nil {
		return announcement.Announcement{}, trapNoRows(err, announcement.ErrNotFound, "getting announcement by id")
	}
	return row.toModel(), nil
}

func (repo *announcementRepository) QueryAnnouncementsByClass(ctx context.Context, classID string, sharedOnly bool) ([]announcement.Announcement, error) {
	query := `SELECT * FROM announcement WHERE class_id = $1`
	if sharedOnly {
		query += ` AND is_shared`
	}
	query += ` ORDER BY created_at DESC`

	var rows []announcementRow
	if err := repo.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, errors.Wrap(err, "querying announcements by class")
	}
	announcements := make([]announcement.Announcement, 0, len(rows))
	for _, row := range rows {
		announcements = append(announcements, row.toModel())
	}
	return announcements, nil
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE announcement SET title = $2, content = $3, is_shared = $4 WHERE id = $1`,
		a.ID, a.Title, a.Content, a.IsShared)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	return a, nil
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM announcement WHERE id = $1`, id)
	return errors.Wrap(err, "deleting announcement")
}
