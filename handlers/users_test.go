// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mohdjey123/Boardify/models"
	"github.com/Mohdjey123/Boardify/testutil"
)

func TestGetStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)

	first := testutil.CreateTestPin(t, conn, "alice", "One", testBase)
	second := testutil.CreateTestPin(t, conn, "alice", "Two", testBase)
	testutil.CreateTestLike(t, conn, first, "bob")
	testutil.CreateTestLike(t, conn, second, "bob")
	testutil.CreateTestLike(t, conn, second, "carol")
	testutil.CreateTestFollow(t, conn, "bob", "alice")
	testutil.CreateTestFollow(t, conn, "carol", "alice")
	testutil.CreateTestFollow(t, conn, "alice", "bob")
	testutil.CreateTestBoard(t, conn, "alice", "Travel")

	// Views accumulate across alice's pins.
	for _, id := range []int64{first, first, second} {
		if _, err := conn.Exec(`UPDATE pins SET view_count = view_count + 1 WHERE id = $1`, id); err != nil {
			t.Fatalf("Failed to bump view count: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/users/alice/stats", nil)
	req.SetPathValue("username", "alice")
	w := httptest.NewRecorder()
	handler.GetStats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var stats models.UserStats
	testutil.AssertJSON(t, w, &stats)

	if stats.Pins != 2 {
		t.Errorf("Expected 2 pins, got %d", stats.Pins)
	}
	if stats.Views != 3 {
		t.Errorf("Expected 3 views, got %d", stats.Views)
	}
	if stats.Likes != 3 {
		t.Errorf("Expected 3 likes, got %d", stats.Likes)
	}
	if stats.Followers != 2 {
		t.Errorf("Expected 2 followers, got %d", stats.Followers)
	}
	if stats.Following != 1 {
		t.Errorf("Expected 1 following, got %d", stats.Following)
	}
	if stats.Boards != 1 {
		t.Errorf("Expected 1 board, got %d", stats.Boards)
	}
}

func TestGetStatsUnknownUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)

	req := httptest.NewRequest("GET", "/users/ghost/stats", nil)
	req.SetPathValue("username", "ghost")
	w := httptest.NewRecorder()
	handler.GetStats(w, req)

	// A user with no activity gets all-zero stats rather than a 404.
	testutil.AssertStatus(t, w, http.StatusOK)
	var stats models.UserStats
	testutil.AssertJSON(t, w, &stats)
	if stats != (models.UserStats{}) {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestCreatedPins(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)

	older := testutil.CreateTestPin(t, conn, "alice", "Older", testBase)
	newer := testutil.CreateTestPin(t, conn, "alice", "Newer", testBase.Add(1*time.Minute))
	testutil.CreateTestPin(t, conn, "bob", "Not hers", testBase)
	testutil.CreateTestLike(t, conn, older, "alice")

	req := httptest.NewRequest("GET", "/users/alice/pins", nil)
	req.SetPathValue("username", "alice")
	w := httptest.NewRecorder()
	handler.CreatedPins(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var pins []models.PinSummary
	testutil.AssertJSON(t, w, &pins)

	if len(pins) != 2 {
		t.Fatalf("Expected 2 pins, got %d", len(pins))
	}
	if pins[0].ID != newer || pins[1].ID != older {
		t.Errorf("Expected newest-first, got %d,%d", pins[0].ID, pins[1].ID)
	}
	// Viewer defaults to the profile owner.
	if !pins[1].LikedByUser {
		t.Error("Expected alice's own like to be flagged")
	}
}

func TestSavedPins(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(conn, cfg)

	travel := testutil.CreateTestBoard(t, conn, "alice", "Travel")
	food := testutil.CreateTestBoard(t, conn, "alice", "Food")
	otherBoard := testutil.CreateTestBoard(t, conn, "bob", "Other")

	shared := testutil.CreateTestPin(t, conn, "carol", "Shared", testBase)
	only := testutil.CreateTestPin(t, conn, "carol", "Only", testBase.Add(1*time.Minute))
	elsewhere := testutil.CreateTestPin(t, conn, "carol", "Elsewhere", testBase)

	// The same pin saved to two of alice's boards appears once.
	testutil.SaveTestPin(t, conn, travel, shared, testBase)
	testutil.SaveTestPin(t, conn, food, shared, testBase.Add(1*time.Minute))
	testutil.SaveTestPin(t, conn, food, only, testBase.Add(2*time.Minute))
	testutil.SaveTestPin(t, conn, otherBoard, elsewhere, testBase)

	req := httptest.NewRequest("GET", "/users/alice/saved", nil)
	req.SetPathValue("username", "alice")
	w := httptest.NewRecorder()
	handler.SavedPins(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var pins []models.PinSummary
	testutil.AssertJSON(t, w, &pins)

	if len(pins) != 2 {
		t.Fatalf("Expected 2 distinct saved pins, got %d", len(pins))
	}
	if pins[0].ID != only || pins[1].ID != shared {
		t.Errorf("Expected newest-first distinct pins, got %d,%d", pins[0].ID, pins[1].ID)
	}
}
