package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/class"
)

type classRepository struct {
	db *classTable
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) *classRepository {
	return &classRepository{db: db.class}
}

func (repo *classRepository) query() []class.Class {
	classes := make([]class.Class, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		classes = append(classes, *c)
	}
	return classes
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class, exec ...core.DBExecutor) (class.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cls.ID = uuid.New().String()
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryClasses(ctx context.Context, filter *class.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]class.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]class.Class, 0)
	for _, cls := range repo.query() {
		if filter != nil && !matchClass(cls, filter) {
			continue
		}
		classes = append(classes, cls)
	}
	sortClasses(classes, ordering)
	return classes, nil
}

func matchClass(cls class.Class, filter *class.QueryFilter) bool {
	if filter.Search != "" &&
		!containsFold(cls.Name, filter.Search) &&
		!containsFold(cls.Description, filter.Search) &&
		!containsFold(cls.Instructor, filter.Search) {
		return false
	}
	if len(filter.Statuses) > 0 && !inList(cls.Status, filter.Statuses) {
		return false
	}
	if len(filter.Types) > 0 && !inList(cls.ClassType, filter.Types) {
		return false
	}
	if filter.Instructor != "" && cls.Instructor != filter.Instructor {
		return false
	}
	if filter.Room != "" && cls.Room != filter.Room {
		return false
	}
	if len(filter.Difficulties) > 0 && !inList(cls.DifficultyLevel, filter.Difficulties) {
		return false
	}
	if !filter.Date.IsZero() && !cls.ClassDate.Equal(filter.Date) {
		return false
	}
	if !filter.DateFrom.IsZero() && cls.ClassDate.Before(filter.DateFrom) {
		return false
	}
	if !filter.DateTo.IsZero() && cls.ClassDate.After(filter.DateTo) {
		return false
	}
	return true
}

// sortClasses honors the schedule ordering fields; anything else keeps map order.
func sortClasses(classes []class.Class, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		return
	}
	less := func(a, b *class.Class, field string) (lt, eq bool) {
		switch field {
		case "class_date":
			return a.ClassDate.Before(b.ClassDate), a.ClassDate.Equal(b.ClassDate)
		case "start_time":
			return a.StartTime < b.StartTime, a.StartTime == b.StartTime
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		case "name":
			return a.Name < b.Name, a.Name == b.Name
		}
		return false, true
	}
	sort.SliceStable(classes, func(i, j int) bool {
		for _, ord := range ordering {
			lt, eq := less(&classes[i], &classes[j], ord.Field)
			if eq {
				continue
			}
			if ord.Ascending {
				return lt
			}
			return !lt
		}
		return false
	})
}

func (repo *classRepository) GetClass(ctx context.Context, filter class.GetFilter, exec ...core.DBExecutor) (class.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.table[filter.ID]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls class.Class, exec ...core.DBExecutor) (class.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[cls.ID]; !ok {
		return class.Class{}, class.ErrNotFound
	}
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) DeleteClassesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}

func (repo *classRepository) IncrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (class.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cls, ok := repo.db.table[id]
	if !ok {
		return class.Class{}, class.ErrNotFound
	}
	// capacity guard under the write lock; concurrent enrollments cannot oversell
	if cls.CurrentEnrollment >= cls.MaxCapacity {
		return class.Class{}, class.ErrClassFull
	}
	cls.CurrentEnrollment++
	cls.UpdatedAt = time.Now().UTC()
	return *cls, nil
}

func (repo *classRepository) DecrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (class.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cls, ok := repo.db.table[id]
	if !ok {
		return class.Class{}, class.ErrNotFound
	}
	if cls.CurrentEnrollment > 0 {
		cls.CurrentEnrollment--
	}
	cls.UpdatedAt = time.Now().UTC()
	return *cls, nil
}
