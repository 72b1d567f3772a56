// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Boardify API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PinHandler: Pin lifecycle (create, read, list, delete)
  - LikeHandler: Like toggling and view counting
  - CommentHandler: Comment listing and creation
  - FollowHandler: Follow/unfollow toggling
  - BoardHandler: Boards and saved pins
  - FeedHandler: Personalized feed and search
  - UserHandler: Profile pins, saved pins, and stats

Handlers are created via constructor functions that accept *sql.DB and Config:

	pinHandler := handlers.NewPinHandler(db, cfg)

# Pin Creation

A pin with N images is written atomically: the first image becomes the
pin row's primary image_url and the remaining N-1 become ordered
pin_images rows, all inside one transaction. A failure on any image
rolls back the whole pin.

	POST /pins → CreatePin (201 with the full pin detail)

# Toggle Semantics

Likes and follows are toggles. The current state is checked and flipped
inside a transaction; a concurrent duplicate insert is treated as
"already in the requested state" and reported as success:

	POST /pins/{id}/like → ToggleLike (maintains pins.like_count)
	POST /follow         → ToggleFollow

Saving a pin to a board is not a toggle: re-saving reports
already_saved=true and leaves the board unchanged.

# Feed

The feed is the union of the requester's own pins and pins from users
they follow, newest first:

	GET /feed?username=alice

# Identity

Usernames arrive in request bodies and query parameters and are taken
at face value: authentication happens upstream (the frontend's identity
provider), and this service never verifies that the caller owns the
username it sends.

# Pin Summaries

List endpoints return pin summaries that carry like_count,
comment_count, and a per-requester liked_by_user flag. The optional
username query parameter identifies the requester.
*/
package handlers
