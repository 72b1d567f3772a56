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

type LikeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLikeHandler(conn *sql.DB, cfg cliparse.Config) *LikeHandler {
	return &LikeHandler{db: conn, cfg: cfg}
}

// ToggleLike handles POST /pins/:id/like
// A true toggle: liking twice returns to the unliked state. Check and act
// run in one transaction; a concurrent identical insert loses the race on
// the UNIQUE(pin_id, username) constraint and is reported as already liked.
func (h *LikeHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	var req models.LikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var liked bool
	var likeCount int

	var likeID int64
	err = tx.QueryRow(`
		SELECT id FROM likes WHERE pin_id = $1 AND username = $2
	`, pinID, req.Username).Scan(&likeID)

	switch {
	case err == sql.ErrNoRows:
		// Not liked yet: insert and bump the counter.
		_, err = tx.Exec(`
			INSERT INTO likes (pin_id, username, created_at)
			VALUES ($1, $2, $3)
		`, pinID, req.Username, time.Now())

		if err != nil {
			if db.IsUniqueViolation(err) {
				// A concurrent request inserted first; already in the
				// desired state.
				tx.Rollback()
				count, cerr := pinLikeCount(h.db, pinID)
				if cerr != nil {
					slog.Error("failed to query like count", "error", cerr, "pin_id", pinID)
					middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
					return
				}
				middleware.JSONResponse(w, http.StatusOK, models.ToggleLikeResponse{Liked: true, LikeCount: count})
				return
			}
			if db.IsForeignKeyViolation(err) {
				middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
				return
			}
			slog.Error("failed to insert like", "error", err, "pin_id", pinID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to like pin")
			return
		}

		err = tx.QueryRow(`
			UPDATE pins SET like_count = like_count + 1 WHERE id = $1
			RETURNING like_count
		`, pinID).Scan(&likeCount)
		liked = true

	case err != nil:
		slog.Error("failed to query like", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return

	default:
		// Already liked: remove and drop the counter.
		if _, err = tx.Exec(`DELETE FROM likes WHERE id = $1`, likeID); err == nil {
			err = tx.QueryRow(`
				UPDATE pins SET like_count = like_count - 1 WHERE id = $1
				RETURNING like_count
			`, pinID).Scan(&likeCount)
		}
		liked = false
	}

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}
	if err != nil {
		slog.Error("failed to update like count", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to like pin")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to like pin")
		return
	}

	slog.Info("like toggled", "pin_id", pinID, "username", req.Username, "liked", liked)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleLikeResponse{Liked: liked, LikeCount: likeCount})
}

// Unlike handles DELETE /pins/:id/like
// Unconditional removal; unliking a pin that was never liked is a no-op.
// The username comes from ?username= or the request body.
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		var req models.LikeRequest
		if err := middleware.ParseJSONBody(r, &req); err == nil {
			username = req.Username
		}
	}
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM likes WHERE pin_id = $1 AND username = $2
	`, pinID, username)
	if err != nil {
		slog.Error("failed to delete like", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to unlike pin")
		return
	}

	affected, _ := res.RowsAffected()

	var likeCount int
	if affected > 0 {
		err = tx.QueryRow(`
			UPDATE pins SET like_count = like_count - 1 WHERE id = $1
			RETURNING like_count
		`, pinID).Scan(&likeCount)
	} else {
		err = tx.QueryRow(`SELECT like_count FROM pins WHERE id = $1`, pinID).Scan(&likeCount)
	}

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}
	if err != nil {
		slog.Error("failed to update like count", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to unlike pin")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to unlike pin")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ToggleLikeResponse{Liked: false, LikeCount: likeCount})
}

// RecordView handles POST /pins/:id/view
// The conditional UPDATE is the whole operation, so concurrent views
// cannot lose increments.
func (h *LikeHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	var viewCount int
	err = h.db.QueryRow(`
		UPDATE pins SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, pinID).Scan(&viewCount)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}
	if err != nil {
		slog.Error("failed to record view", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record view")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ViewResponse{ViewCount: viewCount})
}

func pinLikeCount(conn *sql.DB, pinID int64) (int, error) {
	var count int
	err := conn.QueryRow(`SELECT like_count FROM pins WHERE id = $1`, pinID).Scan(&count)
	return count, err
}
