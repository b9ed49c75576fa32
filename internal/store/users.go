package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/rbaskam/goblog/internal/models"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(name, email, passwordHash string) (*models.User, error) {
	query := `
        INSERT INTO users (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `

	user := models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
	}

	err := s.db.QueryRowx(query, name, email, passwordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("store: create user: %w", err)
	}

	return &user, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := s.db.Get(&user, `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE email=$1
    `, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user by email: %w", err)
	}

	return &user, nil
}

func (s *UserStore) GetByID(id int64) (*models.User, error) {
	var user models.User

	err := s.db.Get(&user, `
        SELECT id, name, email, password_hash, created_at
        FROM users
        WHERE id=$1
    `, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user: %w", err)
	}

	return &user, nil
}
