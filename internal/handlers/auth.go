package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rbaskam/goblog/internal/auth"
	"github.com/rbaskam/goblog/internal/middleware"
	"github.com/rbaskam/goblog/internal/models"
	"github.com/rbaskam/goblog/internal/store"
	"github.com/rbaskam/goblog/internal/utils"
	"github.com/rbaskam/goblog/internal/validate"
)

// UserStore is the record abstraction the auth handlers delegate to.
type UserStore interface {
	Create(name, email, passwordHash string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}

// SessionManager covers the session lifecycle operations login and logout
// need.
type SessionManager interface {
	Create(ctx context.Context, userID int64) (string, error)
	Destroy(ctx context.Context, token string) error
}

type AuthHandler struct {
	users      UserStore
	sessions   SessionManager
	secret     string
	accessTTL  time.Duration
	sessionTTL time.Duration
}

func NewAuthHandler(users UserStore, sessions SessionManager, secret string, accessTTL, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:      users,
		sessions:   sessions,
		secret:     secret,
		accessTTL:  accessTTL,
		sessionTTL: sessionTTL,
	}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *models.User `json:"user"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fieldErrors := validate.Request(req); fieldErrors != nil {
		utils.JSONValidation(w, fieldErrors)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.users.Create(req.Name, req.Email, string(hash)); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			utils.JSONError(w, http.StatusBadRequest, "email already exists")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{
		"message": "user created",
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fieldErrors := validate.Request(req); fieldErrors != nil {
		utils.JSONValidation(w, fieldErrors)
		return
	}

	u, err := h.users.GetByEmail(req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.sessions.Create(r.Context(), u.ID)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "session error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	access, exp, err := auth.NewAccessToken(u.ID, u.Email, h.secret, h.accessTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	utils.JSON(w, http.StatusOK, loginResp{
		AccessToken: access,
		ExpiresIn:   exp,
		User:        u,
	})
}

// -------------- LOGIN FORM --------------------

// LoginForm is the target of every unauthenticated redirect.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "log in to continue",
	})
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.SessionToken(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "session error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
		return
	}

	user, err := h.users.GetByID(uid)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
