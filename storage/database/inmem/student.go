package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-rollover/core/student"
	"github.com/trezcool/masomo-rollover/core/transition"
)

type StudentRepository struct {
	db *DB
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (repo *StudentRepository) query(filter student.QueryFilter) []student.Student {
	students := make([]student.Student, 0, len(repo.db.studentIDs))
	for _, id := range repo.db.studentIDs {
		std := repo.db.students[id]
		if filter.ClassID != "" && std.ClassID != filter.ClassID {
			continue
		}
		if filter.SessionID != "" && std.SessionID != filter.SessionID {
			continue
		}
		students = append(students, *std)
	}
	return students
}

func (repo *StudentRepository) ListStudents(_ context.Context, filter student.QueryFilter, page, limit int) (student.Page, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	all := repo.query(filter)
	start, end, total := paginate(len(all), page, limit)
	return student.Page{Items: all[start:end], TotalPages: total}, nil
}

func (repo *StudentRepository) GetStudent(id string) (student.Student, bool) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.students[id]; ok {
		return *std, true
	}
	return student.Student{}, false
}

// CreateStudent stores std, generating its ID when empty.
func (repo *StudentRepository) CreateStudent(std student.Student) student.Student {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if std.ID == "" {
		std.ID = uuid.New().String()
	}
	if std.Status == "" {
		std.Status = student.StatusActive
	}
	if _, exists := repo.db.students[std.ID]; !exists {
		repo.db.studentIDs = append(repo.db.studentIDs, std.ID)
	}
	repo.db.students[std.ID] = &std
	return std
}

// ApplyTransition moves every listed student to the target session in one locked pass:
// promote and retain place them in the target class, transfer marks them inactive with
// no class. Unknown students abort the whole batch before anything is written.
func (repo *StudentRepository) ApplyTransition(req transition.Request) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, upd := range req.Updates {
		if _, ok := repo.db.students[upd.StudentID]; !ok {
			return transition.ErrStudentNotInPlan
		}
	}
	for _, upd := range req.Updates {
		std := repo.db.students[upd.StudentID]
		std.SessionID = req.SessionID
		if upd.Action == transition.KindTransfer {
			std.ClassID = ""
			std.Status = student.StatusInactive
			continue
		}
		std.ClassID = upd.TargetClassID
		std.Status = student.StatusActive
	}
	return nil
}
