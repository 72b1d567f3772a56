// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mohdjey123/Boardify/cliparse"
	"github.com/Mohdjey123/Boardify/db"
)

// GetTestConfig returns a standard test configuration. Tests run on a
// private in-memory sqlite database, which is a first-class target of
// the DatabaseType switch, so handlers execute the same SQL they run in
// production-sqlite mode and the suite needs no running Postgres.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           5000,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		MaxOpenConns:   1,
		MaxIdleConns:   1,
		RequestTimeout: 10 * time.Second,
	}
}

// SetupTestDB opens a fresh in-memory database with the full schema.
// Each call gets its own database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestPin inserts a pin with an explicit creation time and returns
// its id. The first image is the primary; the rest become secondary rows
// in order.
func CreateTestPin(t *testing.T, conn *sql.DB, username, title string, createdAt time.Time, images ...string) int64 {
	t.Helper()

	if len(images) == 0 {
		images = []string{"https://img.example.com/" + title + ".jpg"}
	}

	var pinID int64
	err := conn.QueryRow(`
		INSERT INTO pins (title, description, image_url, username, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, title, "about "+title, images[0], username, createdAt).Scan(&pinID)
	if err != nil {
		t.Fatalf("Failed to create test pin: %v", err)
	}

	for i, img := range images[1:] {
		_, err := conn.Exec(`
			INSERT INTO pin_images (pin_id, image_url, position)
			VALUES ($1, $2, $3)
		`, pinID, img, i+1)
		if err != nil {
			t.Fatalf("Failed to create test pin image: %v", err)
		}
	}

	return pinID
}

// CreateTestBoard inserts a board and returns its id.
func CreateTestBoard(t *testing.T, conn *sql.DB, username, title string) int64 {
	t.Helper()

	var boardID int64
	err := conn.QueryRow(`
		INSERT INTO boards (username, title, description, is_private, created_at)
		VALUES ($1, $2, '', 0, $3)
		RETURNING id
	`, username, title, time.Now()).Scan(&boardID)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return boardID
}

// SaveTestPin saves a pin to a board with an explicit save time.
func SaveTestPin(t *testing.T, conn *sql.DB, boardID, pinID int64, savedAt time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO saved_pins (board_id, pin_id, saved_at)
		VALUES ($1, $2, $3)
	`, boardID, pinID, savedAt)
	if err != nil {
		t.Fatalf("Failed to save test pin: %v", err)
	}
}

// CreateTestFollow makes follower follow following.
func CreateTestFollow(t *testing.T, conn *sql.DB, follower, following string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO followers (follower_username, following_username, created_at)
		VALUES ($1, $2, $3)
	`, follower, following, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test follow: %v", err)
	}
}

// CreateTestLike likes a pin as username.
func CreateTestLike(t *testing.T, conn *sql.DB, pinID int64, username string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO likes (pin_id, username, created_at)
		VALUES ($1, $2, $3)
	`, pinID, username, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test like: %v", err)
	}
	if _, err := conn.Exec(`UPDATE pins SET like_count = like_count + 1 WHERE id = $1`, pinID); err != nil {
		t.Fatalf("Failed to bump like count: %v", err)
	}
}

// CreateTestComment adds a comment with an explicit creation time and
// returns its id.
func CreateTestComment(t *testing.T, conn *sql.DB, pinID int64, username, content string, createdAt time.Time) int64 {
	t.Helper()

	var commentID int64
	err := conn.QueryRow(`
		INSERT INTO comments (pin_id, username, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, pinID, username, content, createdAt).Scan(&commentID)
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return commentID
}

// CountRows returns the row count of a table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
