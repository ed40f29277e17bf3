package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
)

type userRepository struct {
	store *Store
}

func cloneUser(u user.User) user.User {
	u.SupervisorID = clonePtr(u.SupervisorID)
	u.PasswordHash = clonePtr(u.PasswordHash)
	return u
}

func sortUsersByName(users []user.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, errs.Storage("get user", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, errs.Storage("get user by email", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// ListByIDs implements user.UserRepository.
func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list users", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := make([]user.User, 0, len(ids))
	for id := range toSet(ids) {
		if u, ok := r.store.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	sortUsersByName(users)
	return users, nil
}

// ListDirectReports implements user.UserRepository.
func (r *userRepository) ListDirectReports(ctx context.Context, supervisorID string) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list direct reports", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users := []user.User{}
	for _, u := range r.store.users {
		if u.ReportsTo(supervisorID) {
			users = append(users, cloneUser(u))
		}
	}
	sortUsersByName(users)
	return users, nil
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, errs.Storage("create user", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if newUser.ID == "" {
		newUser.ID = r.store.newID()
	}
	if _, exists := r.store.users[newUser.ID]; exists {
		return user.User{}, errs.Conflict("user already exists")
	}
	r.store.users[newUser.ID] = cloneUser(newUser)
	return cloneUser(newUser), nil
}
