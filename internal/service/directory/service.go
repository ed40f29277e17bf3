package directory

import (
	"context"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
)

type DirectoryServiceImpl struct {
	user.UserRepository
}

func NewDirectoryService(userRepository user.UserRepository) user.DirectoryService {
	return &DirectoryServiceImpl{
		UserRepository: userRepository,
	}
}

// FindUser implements user.DirectoryService.
func (d *DirectoryServiceImpl) FindUser(ctx context.Context, id string) (user.User, error) {
	return d.UserRepository.GetByID(ctx, id)
}

// ListDirectReports implements user.DirectoryService.
func (d *DirectoryServiceImpl) ListDirectReports(ctx context.Context, supervisorID string) ([]user.User, error) {
	reports, err := d.UserRepository.ListDirectReports(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	user.SortByName(reports)
	return reports, nil
}

// Index implements user.DirectoryService.
func (d *DirectoryServiceImpl) Index(ctx context.Context, ids []string) (map[string]user.User, error) {
	if len(ids) == 0 {
		return map[string]user.User{}, nil
	}
	users, err := d.UserRepository.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[string]user.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}
