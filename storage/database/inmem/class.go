package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-rollover/core/class"
)

type ClassRepository struct {
	db *DB
}

var _ class.Repository = (*ClassRepository)(nil)

func NewClassRepository(db *DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (repo *ClassRepository) ListClasses(_ context.Context, page, limit int) (class.Page, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	start, end, total := paginate(len(repo.db.classIDs), page, limit)
	items := make([]class.Class, 0, end-start)
	for _, id := range repo.db.classIDs[start:end] {
		items = append(items, *repo.db.classes[id])
	}
	return class.Page{Items: items, TotalPages: total}, nil
}

func (repo *ClassRepository) GetClass(id string) (class.Class, bool) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, true
	}
	return class.Class{}, false
}

// CreateClass stores cls, generating its ID when empty.
func (repo *ClassRepository) CreateClass(cls class.Class) class.Class {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if cls.ID == "" {
		cls.ID = uuid.New().String()
	}
	if _, exists := repo.db.classes[cls.ID]; !exists {
		repo.db.classIDs = append(repo.db.classIDs, cls.ID)
	}
	repo.db.classes[cls.ID] = &cls
	return cls
}
