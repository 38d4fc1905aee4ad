package inmemdb

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
)

// Seed fills an empty DB with demo data: grades 1 to 6 with two sections, a "Nursery"
// class, the current school year (active) and the next one, and a few students per class.
func Seed(db *DB, now time.Time) error {
	ctx := context.Background()
	sessions := NewSessionRepository(db)
	classes := NewClassRepository(db)
	students := NewStudentRepository(db)

	if page, err := sessions.ListSessions(ctx, 1, 1); err != nil || len(page.Items) > 0 {
		return err
	}

	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	current, err := sessions.CreateSession(ctx, session.NewSession{
		Name:      fmt.Sprintf("%d-%d", year, year+1),
		StartDate: session.NewDate(year, time.July, 1),
		EndDate:   session.NewDate(year+1, time.June, 30),
		IsActive:  true,
	})
	if err != nil {
		return err
	}
	if _, err = sessions.CreateSession(ctx, session.NewSession{
		Name:      fmt.Sprintf("%d-%d", year+1, year+2),
		StartDate: session.NewDate(year+1, time.July, 1),
		EndDate:   session.NewDate(year+2, time.June, 30),
	}); err != nil {
		return err
	}

	all := []class.Class{{Name: "Nursery"}}
	for grade := 1; grade <= 6; grade++ {
		for _, section := range []string{"A", "B"} {
			all = append(all, class.Class{Name: fmt.Sprint(grade), Section: section})
		}
	}

	scholarNo := 1000
	for _, cls := range all {
		cls = classes.CreateClass(cls)
		for i := 1; i <= 3; i++ {
			scholarNo++
			students.CreateStudent(student.Student{
				Name:          fmt.Sprintf("Student %d (%s)", i, cls.Label()),
				ScholarNumber: fmt.Sprint(scholarNo),
				ClassID:       cls.ID,
				SessionID:     current.ID,
				Status:        student.StatusActive,
			})
		}
	}
	return nil
}
