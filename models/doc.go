// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePinRequest: title, description, images, username, rich_text
  - LikeRequest: username
  - CreateCommentRequest: username, content
  - FollowRequest: follower_username, following_username
  - CreateBoardRequest: username, title, description, is_private
  - SavePinRequest: pin_id

# Response Types

Types for JSON responses:

  - DeletePinResponse: id
  - ToggleLikeResponse: liked, like_count
  - ViewResponse: view_count
  - ToggleFollowResponse: following
  - SavePinResponse: saved, already_saved
  - DeleteBoardResponse: id
  - RemovePinResponse: removed
  - UserStats: pins, views, likes, followers, following, boards
  - UserSearchResult: username, pin_count, follower_count
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Pin: core pin row (title, primary image, owner, counters)
  - PinSummary: Pin plus comment_count and liked_by_user
  - PinDetail: PinSummary plus the ordered secondary images
  - Board: board metadata
  - BoardSummary: Board plus pin_count and cover_url
  - Comment: a single comment on a pin
*/
package models
