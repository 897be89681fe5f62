package controllers

import (
	"log/slog"
	"net/http"

	"lumina/app/models"
	"lumina/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	logger      *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *slog.Logger) *PostController {
	return &PostController{postService: postService, logger: logger}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		writeServiceError(w, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), in)
	if err != nil {
		writeServiceError(w, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update handles a partial update of an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeServiceError(w, pc.logger, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.postService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, pc.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
