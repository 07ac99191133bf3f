package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/trainer"
)

type trainerRepository struct {
	db *trainerTable
}

var _ trainer.Repository = (*trainerRepository)(nil) // interface compliance check

func NewTrainerRepository(db *DB) *trainerRepository {
	return &trainerRepository{db: db.trainer}
}

func (repo *trainerRepository) query() []trainer.Trainer {
	trainers := make([]trainer.Trainer, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		trainers = append(trainers, *t)
	}
	return trainers
}

func (repo *trainerRepository) CheckTrainerUniqueness(ctx context.Context, employeeID string, excludedTrainers []trainer.Trainer, exec ...core.DBExecutor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excluded := make(map[string]bool, len(excludedTrainers))
	for _, t := range excludedTrainers {
		excluded[t.ID] = true
	}

	for _, trn := range repo.query() {
		if excluded[trn.ID] {
			continue
		}
		if employeeID != "" && trn.EmployeeID == employeeID {
			return trainer.ErrTrainerExists
		}
	}
	return nil
}

func (repo *trainerRepository) CreateTrainer(ctx context.Context, trn trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	trn.ID = uuid.New().String()
	repo.db.table[trn.ID] = &trn
	return trn, nil
}

func (repo *trainerRepository) QueryTrainers(ctx context.Context, filter *trainer.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]trainer.Trainer, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	trainers := make([]trainer.Trainer, 0)
	for _, trn := range repo.query() {
		if filter != nil && !matchTrainer(trn, filter) {
			continue
		}
		trainers = append(trainers, trn)
	}
	return trainers, nil
}

func matchTrainer(trn trainer.Trainer, filter *trainer.QueryFilter) bool {
	if filter.Search != "" &&
		!containsFold(trn.Name, filter.Search) &&
		!containsFold(trn.Email, filter.Search) &&
		!containsFold(trn.EmployeeID, filter.Search) {
		return false
	}
	if len(filter.Statuses) > 0 && !inList(trn.Status, filter.Statuses) {
		return false
	}
	if len(filter.EmploymentTypes) > 0 && !inList(trn.EmploymentType, filter.EmploymentTypes) {
		return false
	}
	if len(filter.Specializations) > 0 {
		var any bool
		for _, spec := range trn.Specializations {
			if inList(spec, filter.Specializations) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

func (repo *trainerRepository) GetTrainer(ctx context.Context, filter trainer.GetFilter, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if filter.ID != "" {
		if trn, ok := repo.db.table[filter.ID]; ok {
			return *trn, nil
		}
		return trainer.Trainer{}, trainer.ErrNotFound
	}

	for _, trn := range repo.query() {
		if filter.UserID != "" && trn.UserID == filter.UserID {
			return trn, nil
		}
		if filter.EmployeeID != "" && trn.EmployeeID == filter.EmployeeID {
			return trn, nil
		}
	}
	return trainer.Trainer{}, trainer.ErrNotFound
}

func (repo *trainerRepository) UpdateTrainer(ctx context.Context, trn trainer.Trainer, exec ...core.DBExecutor) (trainer.Trainer, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[trn.ID]; !ok {
		return trainer.Trainer{}, trainer.ErrNotFound
	}
	repo.db.table[trn.ID] = &trn
	return trn, nil
}

func (repo *trainerRepository) DeleteTrainersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
