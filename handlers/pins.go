// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Mohdjey123/Boardify/cliparse"
	"github.com/Mohdjey123/Boardify/middleware"
	"github.com/Mohdjey123/Boardify/models"
)

type PinHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPinHandler(conn *sql.DB, cfg cliparse.Config) *PinHandler {
	return &PinHandler{db: conn, cfg: cfg}
}

// CreatePin handles POST /pins
// The pin row and its secondary image rows are written in one transaction;
// readers never see a pin with only some of its images.
func (h *PinHandler) CreatePin(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(req.Images) == 0 || req.Images[0] == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one image is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// First image is the primary; the generated id keys the rest.
	var pinID int64
	err = tx.QueryRow(`
		INSERT INTO pins (title, description, image_url, username, rich_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.Title, req.Description, req.Images[0], req.Username, richTextValue(req.RichText), time.Now()).Scan(&pinID)

	if err != nil {
		slog.Error("failed to insert pin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pin")
		return
	}

	// Remaining images become secondary rows, submission order preserved.
	// A malformed reference fails the insert and rolls back the whole pin.
	for i, img := range req.Images[1:] {
		_, err = tx.Exec(`
			INSERT INTO pin_images (pin_id, image_url, position)
			VALUES ($1, $2, $3)
		`, pinID, nullIfEmpty(img), i+1)

		if err != nil {
			if img == "" {
				// NOT NULL rejected the empty reference; defer rolls
				// back the pin row with it.
				middleware.ErrorResponse(w, http.StatusBadRequest, "invalid image reference")
				return
			}
			slog.Error("failed to insert pin image", "error", err, "pin_id", pinID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pin")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pin")
		return
	}

	slog.Info("pin created", "pin_id", pinID, "username", req.Username, "images", len(req.Images))

	// Fetch the complete record post-commit.
	detail, err := fetchPinDetail(h.db, pinID, req.Username)
	if err != nil {
		slog.Error("failed to fetch created pin", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, detail)
}

// GetPin handles GET /pins/:id
// The optional ?username= identifies the requester for the liked_by_user flag.
func (h *PinHandler) GetPin(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	viewer := r.URL.Query().Get("username")
	detail, err := fetchPinDetail(h.db, pinID, viewer)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}
	if err != nil {
		slog.Error("failed to query pin", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// ListPins handles GET /pins?username=&page=&limit=
// Returns all pins newest-first with like/comment counts; ?username=
// identifies the requester, not a filter.
func (h *PinHandler) ListPins(w http.ResponseWriter, r *http.Request) {
	viewer := r.URL.Query().Get("username")
	limit, offset := parsePagination(r)

	pins, err := queryPins(h.db, `
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, viewer, limit, offset)

	if err != nil {
		slog.Error("failed to query pins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pins)
}

// DeletePin handles DELETE /pins/:id
// Cascades remove the pin's images, likes, saved_pins and comments.
func (h *PinHandler) DeletePin(w http.ResponseWriter, r *http.Request) {
	pinID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	res, err := h.db.Exec(`DELETE FROM pins WHERE id = $1`, pinID)
	if err != nil {
		slog.Error("failed to delete pin", "error", err, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete pin")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
		return
	}

	slog.Info("pin deleted", "pin_id", pinID)

	middleware.JSONResponse(w, http.StatusOK, models.DeletePinResponse{ID: pinID})
}

// fetchPinDetail loads one pin with its secondary images in submission
// order. Returns sql.ErrNoRows if the pin does not exist.
func fetchPinDetail(conn *sql.DB, pinID int64, viewer string) (models.PinDetail, error) {
	var detail models.PinDetail
	var desc, img, rich sql.NullString

	err := conn.QueryRow(`
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		WHERE p.id = $2
	`, viewer, pinID).Scan(
		&detail.ID, &detail.Title, &desc, &img, &detail.Username,
		&detail.ViewCount, &detail.LikeCount, &rich, &detail.CreatedAt,
		&detail.CommentCount, &detail.LikedByUser,
	)
	if err != nil {
		return detail, err
	}
	detail.Description = desc.String
	detail.ImageURL = img.String
	if rich.Valid && rich.String != "" {
		detail.RichText = json.RawMessage(rich.String)
	}

	rows, err := conn.Query(`
		SELECT image_url FROM pin_images
		WHERE pin_id = $1
		ORDER BY position, id
	`, pinID)
	if err != nil {
		return detail, err
	}
	defer rows.Close()

	detail.Images = []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return detail, err
		}
		detail.Images = append(detail.Images, url)
	}
	return detail, rows.Err()
}

// queryPins runs a pin-summary query and scans the result rows. Every
// caller selects the same column list in the same order.
func queryPins(conn *sql.DB, query string, args ...interface{}) ([]models.PinSummary, error) {
	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pins := []models.PinSummary{}
	for rows.Next() {
		var p models.PinSummary
		var desc, img, rich sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Title, &desc, &img, &p.Username,
			&p.ViewCount, &p.LikeCount, &rich, &p.CreatedAt,
			&p.CommentCount, &p.LikedByUser,
		); err != nil {
			return nil, err
		}
		p.Description = desc.String
		p.ImageURL = img.String
		if rich.Valid && rich.String != "" {
			p.RichText = json.RawMessage(rich.String)
		}
		pins = append(pins, p)
	}
	return pins, rows.Err()
}

// parseID reads an integer path value.
func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 25
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 1 {
			page = n
		}
	}
	return limit, (page - 1) * limit
}

// nullIfEmpty maps "" to NULL so NOT NULL columns reject it.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func richTextValue(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
