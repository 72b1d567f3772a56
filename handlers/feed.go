// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Mohdjey123/Boardify/cliparse"
	"github.com/Mohdjey123/Boardify/middleware"
	"github.com/Mohdjey123/Boardify/models"
)

type FeedHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFeedHandler(conn *sql.DB, cfg cliparse.Config) *FeedHandler {
	return &FeedHandler{db: conn, cfg: cfg}
}

// GetFeed handles GET /feed?username=&page=&limit=
// Pins by followed users plus the requester's own, newest first.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	limit, offset := parsePagination(r)

	pins, err := queryPins(h.db, `
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		WHERE p.username = $1
		   OR p.username IN (
		        SELECT following_username FROM followers WHERE follower_username = $1
		   )
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, username, limit, offset)

	if err != nil {
		slog.Error("failed to query feed", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pins)
}

// SearchPins handles GET /search/pins?query=&username=
// Substring match on title, description and owner; newest first.
// Relevance ranking is a presentation concern and stays client-side.
func (h *FeedHandler) SearchPins(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "query is required")
		return
	}
	viewer := r.URL.Query().Get("username")
	limit, offset := parsePagination(r)

	pattern := "%" + strings.ToLower(query) + "%"
	pins, err := queryPins(h.db, `
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		WHERE LOWER(p.title) LIKE $2
		   OR LOWER(p.description) LIKE $2
		   OR LOWER(p.username) LIKE $2
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`, viewer, pattern, limit, offset)

	if err != nil {
		slog.Error("failed to search pins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pins)
}

// SearchUsers handles GET /search/users?query=
// Matches usernames of pin creators; most prolific first.
func (h *FeedHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := h.db.Query(`
		SELECT p.username,
		       COUNT(*) AS pin_count,
		       (SELECT COUNT(*) FROM followers f WHERE f.following_username = p.username) AS follower_count
		FROM pins p
		WHERE LOWER(p.username) LIKE $1
		GROUP BY p.username
		ORDER BY pin_count DESC, p.username
		LIMIT 20
	`, pattern)
	if err != nil {
		slog.Error("failed to search users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.UserSearchResult{}
	for rows.Next() {
		var u models.UserSearchResult
		if err := rows.Scan(&u.Username, &u.PinCount, &u.FollowerCount); err != nil {
			slog.Error("failed to scan user result", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}
