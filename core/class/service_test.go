package class

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sajidbaba1/fithub/core"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu      sync.Mutex
	classes map[string]Class
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository(classes ...Class) *fakeRepository {
	repo := &fakeRepository{classes: make(map[string]Class)}
	for _, cls := range classes {
		if cls.ID == "" {
			cls.ID = uuid.New().String()
		}
		repo.classes[cls.ID] = cls
	}
	return repo
}

func (repo *fakeRepository) CreateClass(ctx context.Context, cls Class, exec ...core.DBExecutor) (Class, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	cls.ID = uuid.New().String()
	repo.classes[cls.ID] = cls
	return cls, nil
}

func (repo *fakeRepository) QueryClasses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Class, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var out []Class
	for _, cls := range repo.classes {
		if filter != nil {
			if filter.Room != "" && cls.Room != filter.Room {
				continue
			}
			if !filter.Date.IsZero() && !cls.ClassDate.Equal(filter.Date) {
				continue
			}
			if !filter.DateFrom.IsZero() && cls.ClassDate.Before(filter.DateFrom) {
				continue
			}
			if filter.Statuses != nil && !contains(filter.Statuses, cls.Status) {
				continue
			}
		}
		out = append(out, cls)
	}
	return out, nil
}

func (repo *fakeRepository) GetClass(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (Class, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	cls, ok := repo.classes[filter.ID]
	if !ok {
		return Class{}, ErrNotFound
	}
	return cls, nil
}

func (repo *fakeRepository) UpdateClass(ctx context.Context, cls Class, exec ...core.DBExecutor) (Class, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.classes[cls.ID]; !ok {
		return Class{}, ErrNotFound
	}
	repo.classes[cls.ID] = cls
	return cls, nil
}

func (repo *fakeRepository) DeleteClassesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var cnt int
	for _, id := range ids {
		if _, ok := repo.classes[id]; ok {
			delete(repo.classes, id)
			cnt++
		}
	}
	return cnt, nil
}

func (repo *fakeRepository) IncrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (Class, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	cls, ok := repo.classes[id]
	if !ok {
		return Class{}, ErrNotFound
	}
	if cls.CurrentEnrollment >= cls.MaxCapacity {
		return Class{}, ErrClassFull
	}
	cls.CurrentEnrollment++
	repo.classes[id] = cls
	return cls, nil
}

func (repo *fakeRepository) DecrementEnrollment(ctx context.Context, id string, exec ...core.DBExecutor) (Class, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	cls, ok := repo.classes[id]
	if !ok {
		return Class{}, ErrNotFound
	}
	if cls.CurrentEnrollment > 0 {
		cls.CurrentEnrollment--
	}
	repo.classes[id] = cls
	return cls, nil
}

func contains(vals []string, v string) bool {
	for _, val := range vals {
		if val == v {
			return true
		}
	}
	return false
}

func scheduledClass(room string, date core.Date, start, end core.TimeOfDay) Class {
	return Class{
		Name:        "Morning Yoga",
		ClassType:   TypeYoga,
		Room:        room,
		ClassDate:   date,
		StartTime:   start,
		EndTime:     end,
		MaxCapacity: 10,
		Status:      StatusScheduled,
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	date := core.NewDate(2026, time.September, 1)

	t.Run("computes duration and defaults", func(t *testing.T) {
		svc := NewService(newFakeRepository())
		cls, err := svc.Create(ctx, NewClass{
			Name:        "Spin",
			ClassType:   TypeSpinning,
			ClassDate:   date,
			StartTime:   tod(18, 0),
			EndTime:     tod(19, 30),
			MaxCapacity: 20,
			Status:      StatusScheduled,
			Room:        "Studio B",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if cls.Duration != 90 {
			t.Errorf("Duration = %d, want 90", cls.Duration)
		}
		if cls.CurrentEnrollment != 0 {
			t.Errorf("CurrentEnrollment = %d, want 0", cls.CurrentEnrollment)
		}
		if cls.ID == "" {
			t.Error("ID not assigned")
		}
	})

	t.Run("accepts every class type and keeps equipment and notes", func(t *testing.T) {
		svc := NewService(newFakeRepository())
		for i, classType := range AllTypes {
			nc := NewClass{
				Name:        "Session",
				ClassType:   classType,
				ClassDate:   date,
				StartTime:   tod(8+i, 0),
				EndTime:     tod(8+i, 45),
				MaxCapacity: 10,
				Status:      StatusScheduled,
				Equipment:   "mat, towel",
				Notes:       "bring water",
			}
			if err := nc.Validate(ctx); err != nil {
				t.Fatalf("Validate(%s) error = %v", classType, err)
			}
			cls, err := svc.Create(ctx, nc)
			if err != nil {
				t.Fatalf("Create(%s) error = %v", classType, err)
			}
			if cls.Equipment != "mat, towel" || cls.Notes != "bring water" {
				t.Errorf("equipment/notes = %q/%q; want carried through", cls.Equipment, cls.Notes)
			}
		}

		if err := (&NewClass{
			Name:        "Session",
			ClassType:   "HIIT",
			MaxCapacity: 10,
		}).Validate(ctx); err == nil {
			t.Error("Validate() accepted an unknown class type")
		}
	})

	t.Run("rejects overlapping booking", func(t *testing.T) {
		svc := NewService(newFakeRepository(scheduledClass("Studio A", date, tod(9, 0), tod(10, 0))))
		_, err := svc.Create(ctx, NewClass{
			Name:        "HIIT",
			ClassDate:   date,
			StartTime:   tod(9, 30),
			EndTime:     tod(10, 30),
			MaxCapacity: 15,
			Status:      StatusScheduled,
			Room:        "Studio A",
		})
		if _, ok := err.(*ConflictError); !ok {
			t.Fatalf("Create() error = %v, want *ConflictError", err)
		}
	})

	t.Run("allows back to back booking", func(t *testing.T) {
		svc := NewService(newFakeRepository(scheduledClass("Studio A", date, tod(9, 0), tod(10, 0))))
		if _, err := svc.Create(ctx, NewClass{
			Name:        "HIIT",
			ClassDate:   date,
			StartTime:   tod(10, 0),
			EndTime:     tod(11, 0),
			MaxCapacity: 15,
			Status:      StatusScheduled,
			Room:        "Studio A",
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	})

	t.Run("skips conflict check without a room", func(t *testing.T) {
		svc := NewService(newFakeRepository(scheduledClass("", date, tod(9, 0), tod(10, 0))))
		if _, err := svc.Create(ctx, NewClass{
			Name:        "HIIT",
			ClassDate:   date,
			StartTime:   tod(9, 0),
			EndTime:     tod(10, 0),
			MaxCapacity: 15,
			Status:      StatusScheduled,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	date := core.NewDate(2026, time.September, 1)

	t.Run("excludes itself from the collision set", func(t *testing.T) {
		existing := scheduledClass("Studio A", date, tod(9, 0), tod(10, 0))
		existing.ID = uuid.New().String()
		svc := NewService(newFakeRepository(existing))

		if _, err := svc.Update(ctx, existing.ID, UpdateClass{
			Name:        existing.Name,
			ClassDate:   date,
			StartTime:   tod(9, 0),
			EndTime:     tod(10, 0),
			MaxCapacity: 10,
			Room:        "Studio A",
		}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	})

	t.Run("conflicts against other classes", func(t *testing.T) {
		a := scheduledClass("Studio A", date, tod(9, 0), tod(10, 0))
		a.ID = uuid.New().String()
		b := scheduledClass("Studio A", date, tod(11, 0), tod(12, 0))
		b.ID = uuid.New().String()
		svc := NewService(newFakeRepository(a, b))

		_, err := svc.Update(ctx, b.ID, UpdateClass{
			Name:        b.Name,
			ClassDate:   date,
			StartTime:   tod(9, 30),
			EndTime:     tod(10, 30),
			MaxCapacity: 10,
			Room:        "Studio A",
		})
		if _, ok := err.(*ConflictError); !ok {
			t.Fatalf("Update() error = %v, want *ConflictError", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewService(newFakeRepository())
		if _, err := svc.Update(ctx, "nope", UpdateClass{Name: "x", MaxCapacity: 1}); err != ErrNotFound {
			t.Fatalf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

func TestServiceEnroll(t *testing.T) {
	ctx := context.Background()
	tomorrow := core.Today().AddDays(1)

	t.Run("increments enrollment", func(t *testing.T) {
		cls := scheduledClass("Studio A", tomorrow, tod(9, 0), tod(10, 0))
		cls.ID = uuid.New().String()
		svc := NewService(newFakeRepository(cls))

		got, err := svc.Enroll(ctx, cls.ID)
		if err != nil {
			t.Fatalf("Enroll() error = %v", err)
		}
		if got.CurrentEnrollment != 1 {
			t.Errorf("CurrentEnrollment = %d, want 1", got.CurrentEnrollment)
		}
	})

	t.Run("full class", func(t *testing.T) {
		cls := scheduledClass("Studio A", tomorrow, tod(9, 0), tod(10, 0))
		cls.ID = uuid.New().String()
		cls.CurrentEnrollment = cls.MaxCapacity
		svc := NewService(newFakeRepository(cls))

		if _, err := svc.Enroll(ctx, cls.ID); err != ErrClassFull {
			t.Fatalf("Enroll() error = %v, want ErrClassFull", err)
		}
	})

	t.Run("cancelled class", func(t *testing.T) {
		cls := scheduledClass("Studio A", tomorrow, tod(9, 0), tod(10, 0))
		cls.ID = uuid.New().String()
		cls.Status = StatusCancelled
		svc := NewService(newFakeRepository(cls))

		if _, err := svc.Enroll(ctx, cls.ID); err != ErrClassNotOpen {
			t.Fatalf("Enroll() error = %v, want ErrClassNotOpen", err)
		}
	})

	t.Run("too far in the past", func(t *testing.T) {
		cls := scheduledClass("Studio A", core.Today().AddDays(-2), tod(9, 0), tod(10, 0))
		cls.ID = uuid.New().String()
		svc := NewService(newFakeRepository(cls))

		if _, err := svc.Enroll(ctx, cls.ID); err != ErrClassInPast {
			t.Fatalf("Enroll() error = %v, want ErrClassInPast", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewService(newFakeRepository())
		if _, err := svc.Enroll(ctx, "nope"); err != ErrNotFound {
			t.Fatalf("Enroll() error = %v, want ErrNotFound", err)
		}
	})
}

func TestServiceUnenroll(t *testing.T) {
	ctx := context.Background()
	tomorrow := core.Today().AddDays(1)

	cls := scheduledClass("Studio A", tomorrow, tod(9, 0), tod(10, 0))
	cls.ID = uuid.New().String()
	cls.CurrentEnrollment = 1
	svc := NewService(newFakeRepository(cls))

	got, err := svc.Unenroll(ctx, cls.ID)
	if err != nil {
		t.Fatalf("Unenroll() error = %v", err)
	}
	if got.CurrentEnrollment != 0 {
		t.Errorf("CurrentEnrollment = %d, want 0", got.CurrentEnrollment)
	}

	// already at zero: silent clamp, no error
	got, err = svc.Unenroll(ctx, cls.ID)
	if err != nil {
		t.Fatalf("Unenroll() at zero error = %v", err)
	}
	if got.CurrentEnrollment != 0 {
		t.Errorf("CurrentEnrollment = %d, want 0", got.CurrentEnrollment)
	}
}

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	cls := scheduledClass("Studio A", core.Today(), tod(9, 0), tod(10, 0))
	cls.ID = uuid.New().String()
	cls.Status = StatusCompleted
	svc := NewService(newFakeRepository(cls))

	// no transition table: any status may follow any other
	got, err := svc.UpdateStatus(ctx, cls.ID, StatusScheduled)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if got.Status != StatusScheduled {
		t.Errorf("Status = %s, want %s", got.Status, StatusScheduled)
	}

	if _, err = svc.UpdateStatus(ctx, cls.ID, "NOT_A_STATUS"); err == nil {
		t.Fatal("UpdateStatus() with invalid status expected error")
	}
}
