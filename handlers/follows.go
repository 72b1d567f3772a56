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

type FollowHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFollowHandler(conn *sql.DB, cfg cliparse.Config) *FollowHandler {
	return &FollowHandler{db: conn, cfg: cfg}
}

// ToggleFollow handles POST /follow
// Same toggle discipline as likes: check and act in one transaction,
// UNIQUE(follower_username, following_username) settles concurrent races.
func (h *FollowHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	var req models.FollowRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FollowerUsername == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "follower_username is required")
		return
	}
	if req.FollowingUsername == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "following_username is required")
		return
	}
	if req.FollowerUsername == req.FollowingUsername {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cannot follow yourself")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var following bool

	var rowID int64
	err = tx.QueryRow(`
		SELECT id FROM followers
		WHERE follower_username = $1 AND following_username = $2
	`, req.FollowerUsername, req.FollowingUsername).Scan(&rowID)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`
			INSERT INTO followers (follower_username, following_username, created_at)
			VALUES ($1, $2, $3)
		`, req.FollowerUsername, req.FollowingUsername, time.Now())

		if err != nil {
			if db.IsUniqueViolation(err) {
				// Concurrent follow won the race; already following.
				middleware.JSONResponse(w, http.StatusOK, models.ToggleFollowResponse{Following: true})
				return
			}
			slog.Error("failed to insert follow", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to follow")
			return
		}
		following = true

	case err != nil:
		slog.Error("failed to query follow", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return

	default:
		if _, err := tx.Exec(`DELETE FROM followers WHERE id = $1`, rowID); err != nil {
			slog.Error("failed to delete follow", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to unfollow")
			return
		}
		following = false
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to toggle follow")
		return
	}

	slog.Info("follow toggled",
		"follower", req.FollowerUsername,
		"following_user", req.FollowingUsername,
		"following", following,
	)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleFollowResponse{Following: following})
}
