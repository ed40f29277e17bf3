package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, role, supervisor_id, password_hash, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func scanUser(row scanner) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.SupervisorID,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, op string, query string, args ...any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, errs.Storage(op, err)
	}
	return u, nil
}

func (r *userRepositoryImpl) list(ctx context.Context, op string, query string, args ...any) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errs.Storage(op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(op, err)
	}
	return users, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

// ListByIDs implements user.UserRepository.
func (r *userRepositoryImpl) ListByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	return r.list(ctx, "list users", `SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY name, id`, ids)
}

// ListDirectReports implements user.UserRepository.
func (r *userRepositoryImpl) ListDirectReports(ctx context.Context, supervisorID string) ([]user.User, error) {
	return r.list(ctx, "list direct reports", `SELECT `+userColumns+` FROM users WHERE supervisor_id = $1 ORDER BY name, id`, supervisorID)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		newUser.ID = uuid.Must(uuid.NewV7()).String()
	}
	if newUser.CreatedAt.IsZero() {
		newUser.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (id, name, email, role, supervisor_id, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID,
		newUser.Name,
		newUser.Email,
		newUser.Role,
		newUser.SupervisorID,
		newUser.PasswordHash,
		newUser.CreatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, errs.Conflict("user already exists")
		}
		return user.User{}, errs.Storage("create user", err)
	}
	return created, nil
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{
		db: db,
	}
}
