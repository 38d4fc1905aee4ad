package inmemdb

import (
	"sync"

	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
)

type (
	// DB is a process-local store backing the reference server.
	DB struct {
		mutex    sync.RWMutex
		sessions map[string]*session.Session
		classes  map[string]*class.Class
		students map[string]*student.Student
		// insertion order, for stable listings
		sessionIDs []string
		classIDs   []string
		studentIDs []string
	}
)

func Open() *DB {
	return &DB{
		sessions: make(map[string]*session.Session),
		classes:  make(map[string]*class.Class),
		students: make(map[string]*student.Student),
	}
}

// paginate returns the bounds of page (1-based) over n items and the page count.
func paginate(n, page, limit int) (start, end, totalPages int) {
	if limit <= 0 {
		limit = n
		if limit == 0 {
			limit = 1
		}
	}
	if page < 1 {
		page = 1
	}
	totalPages = (n + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start = (page - 1) * limit
	if start > n {
		start = n
	}
	end = start + limit
	if end > n {
		end = n
	}
	return start, end, totalPages
}
