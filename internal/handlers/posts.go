package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rbaskam/goblog/internal/middleware"
	"github.com/rbaskam/goblog/internal/models"
	"github.com/rbaskam/goblog/internal/store"
	"github.com/rbaskam/goblog/internal/utils"
	"github.com/rbaskam/goblog/internal/validate"
)

// PostStore is the record abstraction the post handlers delegate to.
type PostStore interface {
	List() ([]models.Post, error)
	Create(userID int64, title, body string) (*models.Post, error)
	Get(id int64) (*models.Post, error)
	Update(id int64, title, body string) (*models.Post, error)
	Delete(id int64) error
}

type PostHandler struct {
	store PostStore
}

func NewPostHandler(store PostStore) *PostHandler {
	return &PostHandler{store: store}
}

// postRequest is the payload for both create and update. Title and body are
// required in both cases: a post never persists with either field empty.
type postRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// ---------------------- LIST ----------------------

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- CREATE FORM ----------------------

// CreatePostForm returns the blank record the client binds its form to.
func (h *PostHandler) CreatePostForm(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, postRequest{})
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fieldErrors := validate.Request(req); fieldErrors != nil {
		utils.JSONValidation(w, fieldErrors)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	post, err := h.store.Create(userID, req.Title, req.Body)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusCreated, post)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id := postID(r)

	post, err := h.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)

	post, err := h.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	if post.UserID != userID {
		utils.JSONError(w, http.StatusForbidden, "You can only edit your own posts")
		return
	}

	var req postRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if fieldErrors := validate.Request(req); fieldErrors != nil {
		utils.JSONValidation(w, fieldErrors)
		return
	}

	updated, err := h.store.Update(id, req.Title, req.Body)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)

	post, err := h.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	userID, _ := middleware.UserID(r.Context())
	if post.UserID != userID {
		utils.JSONError(w, http.StatusForbidden, "You can only delete your own posts")
		return
	}

	if err := h.store.Delete(id); err != nil && !errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// postID parses the {id} URL param. Unparseable ids resolve to 0, which no
// record ever has, so lookups fall through to a 404.
func postID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
