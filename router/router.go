// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/Mohdjey123/Boardify/cliparse"
	"github.com/Mohdjey123/Boardify/handlers"
	"github.com/Mohdjey123/Boardify/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pinHandler := handlers.NewPinHandler(db, cfg)
	likeHandler := handlers.NewLikeHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)
	boardHandler := handlers.NewBoardHandler(db, cfg)
	followHandler := handlers.NewFollowHandler(db, cfg)
	feedHandler := handlers.NewFeedHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Pins
	mux.HandleFunc("GET /pins", middleware.WithLogging(pinHandler.ListPins))
	mux.HandleFunc("POST /pins", middleware.WithLogging(pinHandler.CreatePin))
	mux.HandleFunc("GET /pins/{id}", middleware.WithLogging(pinHandler.GetPin))
	mux.HandleFunc("DELETE /pins/{id}", middleware.WithLogging(pinHandler.DeletePin))

	// Likes and views
	mux.HandleFunc("POST /pins/{id}/like", middleware.WithLogging(likeHandler.ToggleLike))
	mux.HandleFunc("DELETE /pins/{id}/like", middleware.WithLogging(likeHandler.Unlike))
	mux.HandleFunc("POST /pins/{id}/view", middleware.WithLogging(likeHandler.RecordView))

	// Comments
	mux.HandleFunc("GET /pins/{id}/comments", middleware.WithLogging(commentHandler.ListComments))
	mux.HandleFunc("POST /pins/{id}/comments", middleware.WithLogging(commentHandler.CreateComment))

	// Feed and follows
	mux.HandleFunc("GET /feed", middleware.WithLogging(feedHandler.GetFeed))
	mux.HandleFunc("POST /follow", middleware.WithLogging(followHandler.ToggleFollow))

	// Boards
	mux.HandleFunc("POST /boards", middleware.WithLogging(boardHandler.CreateBoard))
	mux.HandleFunc("GET /boards/{username}", middleware.WithLogging(boardHandler.ListBoards))
	mux.HandleFunc("GET /boards/{id}/pins", middleware.WithLogging(boardHandler.BoardPins))
	mux.HandleFunc("POST /boards/{id}/pins", middleware.WithLogging(boardHandler.SavePin))
	mux.HandleFunc("DELETE /boards/{id}", middleware.WithLogging(boardHandler.DeleteBoard))
	mux.HandleFunc("DELETE /boards/{id}/pins/{pinId}", middleware.WithLogging(boardHandler.RemovePin))

	// Profiles and search
	mux.HandleFunc("GET /users/{username}/pins", middleware.WithLogging(userHandler.CreatedPins))
	mux.HandleFunc("GET /users/{username}/saved", middleware.WithLogging(userHandler.SavedPins))
	mux.HandleFunc("GET /users/{username}/stats", middleware.WithLogging(userHandler.GetStats))
	mux.HandleFunc("GET /search/pins", middleware.WithLogging(feedHandler.SearchPins))
	mux.HandleFunc("GET /search/users", middleware.WithLogging(feedHandler.SearchUsers))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("boardify API v1"))
	})

	return mux
}
