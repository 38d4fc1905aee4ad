package restrepos

import (
	"context"

	"github.com/trezcool/masomo-rollover/core/student"
	"github.com/trezcool/masomo-rollover/services/rest"
)

type studentRepository struct {
	api *restsvc.Caller
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(api *restsvc.Caller) student.Repository {
	return &studentRepository{api: api}
}

func (repo studentRepository) ListStudents(ctx context.Context, filter student.QueryFilter, page, limit int) (student.Page, error) {
	q := pageQuery(page, limit)
	if filter.ClassID != "" {
		q["classId"] = filter.ClassID
	}
	if filter.SessionID != "" {
		q["sessionId"] = filter.SessionID
	}
	resp, err := repo.api.Call(ctx, restsvc.Get("/students", q))
	if err != nil {
		return student.Page{}, err
	}
	var items []student.Student
	total, err := restsvc.DecodeList(resp.Body, &items)
	if err != nil {
		return student.Page{}, err
	}
	return student.Page{Items: items, TotalPages: total}, nil
}
