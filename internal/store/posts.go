package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rbaskam/goblog/internal/models"
)

// PostStore is the relational-record abstraction for posts. Handlers stay
// thin and delegate every read and write here.
type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) List() ([]models.Post, error) {
	posts := []models.Post{}

	err := s.db.Select(&posts, `SELECT * FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}

	return posts, nil
}

func (s *PostStore) Create(userID int64, title, body string) (*models.Post, error) {
	query := `
        INSERT INTO posts (user_id, title, body)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `

	post := models.Post{
		UserID: userID,
		Title:  title,
		Body:   body,
	}

	err := s.db.QueryRowx(query, userID, title, body).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create post: %w", err)
	}

	return &post, nil
}

func (s *PostStore) Get(id int64) (*models.Post, error) {
	var post models.Post

	err := s.db.Get(&post, `SELECT * FROM posts WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get post: %w", err)
	}

	return &post, nil
}

func (s *PostStore) Update(id int64, title, body string) (*models.Post, error) {
	query := `
        UPDATE posts
        SET title=$1, body=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING id, user_id, title, body, created_at, updated_at
    `

	var post models.Post

	err := s.db.QueryRowx(query, title, body, id).StructScan(&post)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: update post: %w", err)
	}

	return &post, nil
}

func (s *PostStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
