// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Boardify API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Pins:

	GET    /pins                - Paginated pin listing
	POST   /pins                - Create pin (multi-image, transactional)
	GET    /pins/{id}           - Pin detail with secondary images
	DELETE /pins/{id}           - Delete pin (cascades)
	POST   /pins/{id}/like      - Toggle like
	DELETE /pins/{id}/like      - Explicit unlike
	POST   /pins/{id}/view      - Record a view
	GET    /pins/{id}/comments  - List comments
	POST   /pins/{id}/comments  - Add comment

Social:

	GET  /feed?username=... - Personalized feed
	POST /follow            - Toggle follow

Boards:

	POST   /boards                      - Create board
	GET    /boards/{username}           - List a user's boards
	GET    /boards/{id}/pins            - Pins saved to a board
	POST   /boards/{id}/pins            - Save a pin
	DELETE /boards/{id}                 - Delete board
	DELETE /boards/{id}/pins/{pinId}    - Remove a saved pin

Users and search:

	GET /users/{username}/pins  - Pins created by a user
	GET /users/{username}/saved - Distinct pins saved by a user
	GET /users/{username}/stats - Aggregate profile stats
	GET /search/pins?query=...  - Case-insensitive pin search
	GET /search/users?query=... - Username search

# Handler Initialization

The router creates handler instances with dependency injection:

	pinHandler := handlers.NewPinHandler(db, cfg)
	likeHandler := handlers.NewLikeHandler(db, cfg)
	boardHandler := handlers.NewBoardHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
