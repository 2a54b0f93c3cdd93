package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/planner"
)

type plannerRepository struct {
	db *DB
}

func NewPlannerRepository(db *DB) planner.Repository {
	return &plannerRepository{db: db}
}

func (repo *plannerRepository) CreateNote(ctx context.Context, n planner.Note) (planner.Note, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	n.ID = uuid.New().String()
	repo.db.plannerNotes[n.ID] = &n
	return n, nil
}

func (repo *plannerRepository) GetNoteByID(ctx context.Context, id string) (planner.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if n, ok := repo.db.plannerNotes[id]; ok {
		return *n, nil
	}
	return planner.Note{}, planner.ErrNotFound
}

func (repo *plannerRepository) QueryNotesByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]planner.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	notes := make([]planner.Note, 0)
	for _, n := range repo.db.plannerNotes {
		if n.TeacherID != teacherID || n.Date.Before(from) || n.Date.After(to) {
			continue
		}
		notes = append(notes, *n)
	}
	sortNotes(notes)
	return notes, nil
}

func (repo *plannerRepository) QuerySharedNotesByClass(ctx context.Context, classID string) ([]planner.Note, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	notes := make([]planner.Note, 0)
	for _, n := range repo.db.plannerNotes {
		if n.ClassID == classID && !n.IsPrivate {
			notes = append(notes, *n)
		}
	}
	sortNotes(notes)
	return notes, nil
}

func (repo *plannerRepository) UpdateNote(ctx context.Context, n planner.Note) (planner.Note, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.plannerNotes[n.ID]
	if !ok {
		return planner.Note{}, planner.ErrNotFound
	}
	orig.ClassID = n.ClassID
	orig.Date = n.Date
	orig.Title = n.Title
	orig.Content = n.Content
	orig.IsPrivate = n.IsPrivate
	orig.Urgency = n.Urgency
	return *orig, nil
}

func (repo *plannerRepository) DeleteNote(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.plannerNotes, id)
	return nil
}

func sortNotes(notes []planner.Note) {
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date.Before(notes[j].Date) })
}
