package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/rbaskam/goblog/internal/config"
	"github.com/rbaskam/goblog/internal/session"
	"github.com/rbaskam/goblog/internal/store"
)

type Handler struct {
	Auth  *AuthHandler
	Posts *PostHandler
}

func NewHandler(db *sqlx.DB, sessions *session.Store, cfg config.Config) *Handler {
	return &Handler{
		Auth: NewAuthHandler(
			store.NewUserStore(db),
			sessions,
			cfg.AccessSecret,
			cfg.AccessTTL,
			cfg.SessionTTL,
		),
		Posts: NewPostHandler(store.NewPostStore(db)),
	}
}
