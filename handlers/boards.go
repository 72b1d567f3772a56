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

type BoardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBoardHandler(conn *sql.DB, cfg cliparse.Config) *BoardHandler {
	return &BoardHandler{db: conn, cfg: cfg}
}

// CreateBoard handles POST /boards
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBoardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	board := models.Board{
		Username:    req.Username,
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		CreatedAt:   time.Now(),
	}
	err := h.db.QueryRow(`
		INSERT INTO boards (username, title, description, is_private, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, req.Username, req.Title, req.Description, req.IsPrivate, board.CreatedAt).Scan(&board.ID)

	if err != nil {
		slog.Error("failed to insert board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	slog.Info("board created", "board_id", board.ID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.BoardSummary{Board: board})
}

// ListBoards handles GET /boards/:username
// Boards newest-first with pin counts and the most recently saved pin's
// image as cover.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT b.id, b.username, b.title, b.description, b.is_private, b.created_at,
		       (SELECT COUNT(*) FROM saved_pins sp WHERE sp.board_id = b.id) AS pin_count,
		       (SELECT p.image_url FROM saved_pins sp
		        JOIN pins p ON p.id = sp.pin_id
		        WHERE sp.board_id = b.id
		        ORDER BY sp.saved_at DESC, sp.id DESC
		        LIMIT 1) AS cover_url
		FROM boards b
		WHERE b.username = $1
		ORDER BY b.created_at DESC, b.id DESC
	`, username)
	if err != nil {
		slog.Error("failed to query boards", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	boards := []models.BoardSummary{}
	for rows.Next() {
		var b models.BoardSummary
		var desc, cover sql.NullString
		if err := rows.Scan(&b.ID, &b.Username, &b.Title, &desc, &b.IsPrivate, &b.CreatedAt, &b.PinCount, &cover); err != nil {
			slog.Error("failed to scan board", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		b.Description = desc.String
		if cover.Valid {
			b.CoverURL = &cover.String
		}
		boards = append(boards, b)
	}

	middleware.JSONResponse(w, http.StatusOK, boards)
}

// BoardPins handles GET /boards/:id/pins
// Pins in save order, most recently saved first.
func (h *BoardHandler) BoardPins(w http.ResponseWriter, r *http.Request) {
	boardID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid board id")
		return
	}

	var exists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)`, boardID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query board", "error", err, "board_id", boardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
		return
	}

	viewer := r.URL.Query().Get("username")
	pins, err := queryPins(h.db, `
		SELECT p.id, p.title, p.description, p.image_url, p.username,
		       p.view_count, p.like_count, p.rich_text, p.created_at,
		       (SELECT COUNT(*) FROM comments c WHERE c.pin_id = p.id) AS comment_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.pin_id = p.id AND l.username = $1) AS liked_by_user
		FROM pins p
		JOIN saved_pins sp ON sp.pin_id = p.id
		WHERE sp.board_id = $2
		ORDER BY sp.saved_at DESC, sp.id DESC
	`, viewer, boardID)

	if err != nil {
		slog.Error("failed to query board pins", "error", err, "board_id", boardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pins)
}

// SavePin handles POST /boards/:id/pins
// Saving a pin twice to the same board is reported as already_saved, not
// as an error; the UNIQUE(board_id, pin_id) constraint does the check.
func (h *BoardHandler) SavePin(w http.ResponseWriter, r *http.Request) {
	boardID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid board id")
		return
	}

	var req models.SavePinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PinID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pin_id is required")
		return
	}

	var exists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)`, boardID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query board", "error", err, "board_id", boardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO saved_pins (board_id, pin_id, saved_at)
		VALUES ($1, $2, $3)
	`, boardID, req.PinID, time.Now())

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.JSONResponse(w, http.StatusOK, models.SavePinResponse{Saved: false, AlreadySaved: true})
			return
		}
		if db.IsForeignKeyViolation(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Pin not found")
			return
		}
		slog.Error("failed to save pin", "error", err, "board_id", boardID, "pin_id", req.PinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save pin")
		return
	}

	slog.Info("pin saved to board", "board_id", boardID, "pin_id", req.PinID)

	middleware.JSONResponse(w, http.StatusCreated, models.SavePinResponse{Saved: true})
}

// DeleteBoard handles DELETE /boards/:id
// Cascades remove the board's saved_pins rows; the pins themselves stay.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid board id")
		return
	}

	res, err := h.db.Exec(`DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		slog.Error("failed to delete board", "error", err, "board_id", boardID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete board")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
		return
	}

	slog.Info("board deleted", "board_id", boardID)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteBoardResponse{ID: boardID})
}

// RemovePin handles DELETE /boards/:id/pins/:pinId
func (h *BoardHandler) RemovePin(w http.ResponseWriter, r *http.Request) {
	boardID, err := parseID(r, "id")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid board id")
		return
	}
	pinID, err := parseID(r, "pinId")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid pin id")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM saved_pins WHERE board_id = $1 AND pin_id = $2
	`, boardID, pinID)
	if err != nil {
		slog.Error("failed to remove pin from board", "error", err, "board_id", boardID, "pin_id", pinID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove pin")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pin is not saved to this board")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RemovePinResponse{Removed: true})
}
