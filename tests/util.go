package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
	logsvc "github.com/trezcool/masomo-rollover/services/logger"
	inmemdb "github.com/trezcool/masomo-rollover/storage/database/inmem"
)

// NewConfig returns the settings used by tests: no env lookup, no debug, no request logs.
func NewConfig() *core.Config {
	conf := new(core.Config)
	conf.Env = "TEST"
	conf.AppName = "Masomo"
	conf.Build = "test"
	conf.TestMode = true
	conf.API.Timeout = 5 * time.Second
	conf.API.PageSize = 100
	conf.Server.ShutdownTimeout = time.Second
	conf.Server.DisableReqLogs = true
	return conf
}

func NewLogger() core.Logger {
	return logsvc.NewDiscardLogger()
}

func CreateSession(t *testing.T, db *inmemdb.DB, name string, startYear int, isActive bool) session.Session {
	t.Helper()
	sess, err := inmemdb.NewSessionRepository(db).CreateSession(context.Background(), session.NewSession{
		Name:      name,
		StartDate: session.NewDate(startYear, time.July, 1),
		EndDate:   session.NewDate(startYear+1, time.June, 30),
		IsActive:  isActive,
	})
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess
}

func CreateClass(db *inmemdb.DB, id, name, section string) class.Class {
	return inmemdb.NewClassRepository(db).CreateClass(class.Class{ID: id, Name: name, Section: section})
}

func CreateStudent(db *inmemdb.DB, id, name, classID, sessionID string) student.Student {
	return inmemdb.NewStudentRepository(db).CreateStudent(student.Student{
		ID:        id,
		Name:      name,
		ClassID:   classID,
		SessionID: sessionID,
	})
}

// GetSession returns the stored session, failing the test when missing.
func GetSession(t *testing.T, db *inmemdb.DB, id string) session.Session {
	t.Helper()
	sess, ok := inmemdb.NewSessionRepository(db).GetSession(id)
	if !ok {
		t.Fatalf("GetSession(%s): not found", id)
	}
	return sess
}

func GetStudent(t *testing.T, db *inmemdb.DB, id string) student.Student {
	t.Helper()
	std, ok := inmemdb.NewStudentRepository(db).GetStudent(id)
	if !ok {
		t.Fatalf("GetStudent(%s): not found", id)
	}
	return std
}
