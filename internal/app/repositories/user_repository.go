package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/db"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/dberrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

const usersEmailConstraint = "users_email_key"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var userColumns = []string{
	"id", "name", "email", "profile_picture", "bio", "education", "location",
	"followers", "following", "profile_visibility", "join_date", "created_at",
}

// Credentials is the password hash stored for a user.
type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
}

// UserRepository handles the users and auth_credentials tables.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

// Create inserts the profile row and its credentials in one transaction.
func (r *UserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	userSQL, userArgs, err := psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.ProfilePicture, user.Bio, user.Education, user.Location,
			user.Followers, user.Following, user.ProfileVisibility, user.JoinDate, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}

	credSQL, credArgs, err := psql.Insert("auth_credentials").
		Columns("user_id", "password_hash", "updated_at").
		Values(user.ID, passwordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert credentials: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, userSQL, userArgs...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
				return apperrors.ErrAlreadyRegistered
			}
			return fmt.Errorf("insert user: %w", err)
		}
		if _, err := tx.Exec(ctx, credSQL, credArgs...); err != nil {
			return fmt.Errorf("insert credentials: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a profile row by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a profile row by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture, &user.Bio, &user.Education, &user.Location,
		&user.Followers, &user.Following, &user.ProfileVisibility, &user.JoinDate, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// Update writes the editable profile columns and counters back.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	sql, args, err := psql.Update("users").
		Set("name", user.Name).
		Set("profile_picture", user.ProfilePicture).
		Set("bio", user.Bio).
		Set("education", user.Education).
		Set("location", user.Location).
		Set("followers", user.Followers).
		Set("following", user.Following).
		Set("profile_visibility", user.ProfileVisibility).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetCredentials returns the stored password hash for an email.
func (r *UserRepository) GetCredentials(ctx context.Context, email string) (*Credentials, error) {
	sql, args, err := psql.Select("u.id", "u.email", "c.password_hash").
		From("users u").
		Join("auth_credentials c ON c.user_id = u.id").
		Where(squirrel.Eq{"u.email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select credentials: %w", err)
	}

	creds := &Credentials{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&creds.UserID, &creds.Email, &creds.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("select credentials: %w", err)
	}
	return creds, nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	sql, args, err := psql.Update("auth_credentials").
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update password: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
