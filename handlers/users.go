// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Mohdjey123/Boardify/cliparse"
	"github.com/Mohdjey123/Boardify/middleware"
	"github.com/Mohdjey123/Boardify/models"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(conn *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: conn, cfg: cfg}
}

// GetStats handles GET /users/:username/stats
// Aggregate counts for the profile header. A username with no rows
// anywhere just returns zeros; there is no user table to 404 against.
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	var stats models.UserStats
	err := h.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM pins WHERE username = $1),
			(SELECT COALESCE(SUM(view_count), 0) FROM pins WHERE username = $1),
			(SELECT COALESCE(SUM(like_count), 0) FROM pins WHERE username = $1),
			(SELECT COUNT(*) FROM followers WHERE following_username = $1),
			(SELECT COUNT(*) FROM followers WHERE follower_username = $1),
			(SELECT COUNT(*) FROM boards WHERE username = $1)
	`, username).Scan(
		&stats.Pins, &stats.Views, &stats.Likes,
		&stats.Followers, &stats.Following, &stats.Boards,
	)
	if err != nil {
		slog.Error("failed to query user stats", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// CreatedPins handles GET /users/:username/pins
// Pins created by the user, newest first.
func (h *UserHandler) CreatedPins(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	viewer := r.URL.Query().Get("username")
	if viewer == "" {
		viewer = username
	}
	limit, offset := parsePagination(r)

	pins, err := queryPins(h.db, `
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		WHERE p.username = $2
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`, viewer, username, limit, offset)

	if err != nil {
		slog.Error("failed to query created pins", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pins)
}

// SavedPins handles GET /users/:username/saved
// Pins saved to any of the user's boards, each pin once, newest first.
func (h *UserHandler) SavedPins(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	viewer := r.URL.Query().Get("username")
	if viewer == "" {
		viewer = username
	}
	limit, offset := parsePagination(r)

	pins, err := queryPins(h.db, `
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		WHERE p.id IN (
			SELECT sp.pin_id FROM saved_pins sp
			JOIN boards b ON b.id = sp.board_id
			WHERE b.username = $2
		)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`, viewer, username, limit, offset)

	if err != nil {
		slog.Error("failed to query saved pins", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pins)
}
