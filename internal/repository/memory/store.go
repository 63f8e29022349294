// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the storage-layer guarantees the SQL
// implementations get from constraints (unique indexes, conditional
// updates) with a single mutex, which makes them suitable for exercising
// the concurrency contracts in tests without a database.
package memory

import (
	"sync"

	"github.com/trnhan241/examguard/internal/model"
)

type attemptKey struct {
	studentID uint
	examID    uint
}

type responseKey struct {
	attemptID  uint
	questionID uint
}

// Store holds every table behind one mutex. All repositories returned by
// the New*Repository constructors share the same store.
type Store struct {
	mu sync.Mutex

	users        map[uint]model.User
	usersByEmail map[string]uint

	sessions map[string]model.Session

	exams     map[uint]model.Exam
	questions map[uint]model.Question

	attempts      map[uint]model.Attempt
	attemptByPair map[attemptKey]uint

	responses map[responseKey]model.Response

	results         map[uint]model.Result
	resultByAttempt map[uint]uint

	nextUserID     uint
	nextExamID     uint
	nextQuestionID uint
	nextAttemptID  uint
	nextResponseID uint
	nextResultID   uint
}

func NewStore() *Store {
	return &Store{
		users:           make(map[uint]model.User),
		usersByEmail:    make(map[string]uint),
		sessions:        make(map[string]model.Session),
		exams:           make(map[uint]model.Exam),
		questions:       make(map[uint]model.Question),
		attempts:        make(map[uint]model.Attempt),
		attemptByPair:   make(map[attemptKey]uint),
		responses:       make(map[responseKey]model.Response),
		results:         make(map[uint]model.Result),
		resultByAttempt: make(map[uint]uint),
	}
}
