// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/Mohdjey123/Boardify/cliparse"
	"github.com/Mohdjey123/Boardify/db"
	"github.com/Mohdjey123/Boardify/middleware"
	"github.com/Mohdjey123/Boardify/models"
)

type CommentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCommentHandler(conn *sql.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: conn, cfg: cfg}
}

// ListComments handles GET /pins/:id/comments
// Newest first.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	var exists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM pins WHERE id = $1)`, pinID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query pin", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, pin_id, username, content, created_at
		FROM comments
		WHERE pin_id = $1
		ORDER BY created_at DESC, id DESC
	`, pinID)
	if err != nil {
		slog.Error("failed to query comments", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PinID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		comments = append(comments, c)
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}

// CreateComment handles POST /pins/:id/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	var req models.CreateCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	comment := models.Comment{
		PinID:     pinID,
		Username:  req.Username,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	err = h.db.QueryRow(`
		INSERT INTO comments (pin_id, username, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, pinID, req.Username, req.Content, comment.CreatedAt).Scan(&comment.ID)

	if err != nil {
		if db.IsForeignKeyViolation(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
			return
		}
		slog.Error("failed to insert comment", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	slog.Info("comment created", "pin_id", pinID, "comment_id", comment.ID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, comment)
}
