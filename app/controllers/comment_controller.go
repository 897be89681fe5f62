package controllers

import (
	"log/slog"
	"net/http"

	"lumina/app/models"
	"lumina/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	logger         *slog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger *slog.Logger) *CommentController {
	return &CommentController{commentService: commentService, logger: logger}
}

// Create handles appending a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := cc.commentService.AddComment(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, cc.logger, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
