// Package memory implements the repositories on process memory. Every
// operation of every repository runs under the store's single mutex, so the
// compare-and-set operations are atomic with respect to each other.
package memory

import (
	"sync"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/google/uuid"
)

type entryKey struct {
	userID string
	date   string
}

// Store holds users, time entries and requests.
type Store struct {
	mu       sync.Mutex
	users    map[string]user.User
	entries  map[entryKey]attendance.TimeEntry
	requests map[string]request.Request
	newID    func() string
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]user.User),
		entries:  make(map[entryKey]attendance.TimeEntry),
		requests: make(map[string]request.Request),
		newID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
	}
}

// NewSeededStore returns a store preloaded with data.
func NewSeededStore(data fixtures.DemoData) *Store {
	s := NewStore()
	for _, u := range data.Users {
		s.users[u.ID] = u
	}
	for _, e := range data.TimeEntries {
		s.entries[entryKey{e.UserID, e.Date}] = e
	}
	for _, r := range data.Requests {
		s.requests[r.ID] = r
	}
	return s
}

func (s *Store) Users() user.UserRepository {
	return &userRepository{store: s}
}

func (s *Store) TimeEntries() attendance.TimeEntryRepository {
	return &timeEntryRepository{store: s}
}

func (s *Store) Requests() request.RequestRepository {
	return &requestRepository{store: s}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
