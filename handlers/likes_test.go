// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mohdjey123/Boardify/models"
	"github.com/Mohdjey123/Boardify/testutil"
)

func toggleLike(t *testing.T, handler *LikeHandler, pinID int64, username string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", fmt.Sprintf("/pins/%d/like", pinID), models.LikeRequest{Username: username}, nil)
	req.SetPathValue("id", fmt.Sprint(pinID))
	w := httptest.NewRecorder()
	handler.ToggleLike(w, req)
	return w
}

func TestToggleLike(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLikeHandler(conn, cfg)

	pinID := testutil.CreateTestPin(t, conn, "alice", "Sunset", testBase)

	// First toggle likes the pin.
	w := toggleLike(t, handler, pinID, "bob")
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ToggleLikeResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Liked || resp.LikeCount != 1 {
		t.Errorf("Expected liked=true count=1, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}

	// A second user's like is independent.
	w = toggleLike(t, handler, pinID, "carol")
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if !resp.Liked || resp.LikeCount != 2 {
		t.Errorf("Expected liked=true count=2, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}

	// Second toggle by the same user removes only their like.
	w = toggleLike(t, handler, pinID, "bob")
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Liked || resp.LikeCount != 1 {
		t.Errorf("Expected liked=false count=1, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}

	if n := testutil.CountRows(t, conn, "likes"); n != 1 {
		t.Errorf("Expected 1 like row, found %d", n)
	}
}

func TestToggleLikeErrors(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLikeHandler(conn, cfg)

	tests := []struct {
		name           string
		pinID          string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "unknown pin",
			pinID:          "99999",
			body:           models.LikeRequest{Username: "bob"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing username",
			pinID:          "1",
			body:           models.LikeRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid id",
			pinID:          "abc",
			body:           models.LikeRequest{Username: "bob"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/pins/"+tt.pinID+"/like", tt.body, nil)
			req.SetPathValue("id", tt.pinID)
			w := httptest.NewRecorder()

			handler.ToggleLike(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestUnlike(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLikeHandler(conn, cfg)

	pinID := testutil.CreateTestPin(t, conn, "alice", "Sunset", testBase)
	testutil.CreateTestLike(t, conn, pinID, "bob")

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/pins/%d/like?username=bob", pinID), nil)
	req.SetPathValue("id", fmt.Sprint(pinID))
	w := httptest.NewRecorder()
	handler.Unlike(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ToggleLikeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Liked || resp.LikeCount != 0 {
		t.Errorf("Expected liked=false count=0, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}

	// Unliking a pin that was never liked leaves the counter alone.
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/pins/%d/like?username=carol", pinID), nil)
	req.SetPathValue("id", fmt.Sprint(pinID))
	w = httptest.NewRecorder()
	handler.Unlike(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Liked || resp.LikeCount != 0 {
		t.Errorf("Expected idempotent unlike, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}
}

func TestRecordView(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLikeHandler(conn, cfg)

	pinID := testutil.CreateTestPin(t, conn, "alice", "Sunset", testBase)

	for want := 1; want <= 3; want++ {
		req := httptest.NewRequest("POST", fmt.Sprintf("/pins/%d/view", pinID), nil)
		req.SetPathValue("id", fmt.Sprint(pinID))
		w := httptest.NewRecorder()
		handler.RecordView(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ViewResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ViewCount != want {
			t.Errorf("Expected view_count=%d, got %d", want, resp.ViewCount)
		}
	}

	req := httptest.NewRequest("POST", "/pins/99999/view", nil)
	req.SetPathValue("id", "99999")
	w := httptest.NewRecorder()
	handler.RecordView(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
