// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Request types

type CreatePinRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Username    string          `json:"username"`
	RichText    json.RawMessage `json:"rich_text,omitempty"`
}

type LikeRequest struct {
	Username string `json:"username"`
}

type CreateCommentRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

type FollowRequest struct {
	FollowerUsername  string `json:"follower_username"`
	FollowingUsername string `json:"following_username"`
}

type CreateBoardRequest struct {
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

type SavePinRequest struct {
	PinID int64 `json:"pin_id"`
}

// Response types

type DeletePinResponse struct {
	ID int64 `json:"id"`
}

type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type ViewResponse struct {
	ViewCount int `json:"view_count"`
}

type ToggleFollowResponse struct {
	Following bool `json:"following"`
}

type SavePinResponse struct {
	Saved        bool `json:"saved"`
	AlreadySaved bool `json:"already_saved"`
}

type DeleteBoardResponse struct {
	ID int64 `json:"id"`
}

type RemovePinResponse struct {
	Removed bool `json:"removed"`
}

type UserStats struct {
	Pins      int `json:"pins"`
	Views     int `json:"views"`
	Likes     int `json:"likes"`
	Followers int `json:"followers"`
	Following int `json:"following"`
	Boards    int `json:"boards"`
}

type UserSearchResult struct {
	Username      string `json:"username"`
	PinCount      int    `json:"pin_count"`
	FollowerCount int    `json:"follower_count"`
}

// Domain types

type Pin struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Username    string          `json:"username"`
	ViewCount   int             `json:"view_count"`
	LikeCount   int             `json:"like_count"`
	RichText    json.RawMessage `json:"rich_text,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PinSummary is a Pin plus the per-requester fields the list and feed
// endpoints attach.
type PinSummary struct {
	Pin
	CommentCount int  `json:"comment_count"`
	LikedByUser  bool `json:"liked_by_user"`
}

// PinDetail is the complete pin record including secondary images in
// submission order. The primary image stays in image_url.
type PinDetail struct {
	PinSummary
	Images []string `json:"images"`
}

type Board struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
}

// BoardSummary is a Board plus aggregates for the profile grid.
type BoardSummary struct {
	Board
	PinCount int     `json:"pin_count"`
	CoverURL *string `json:"cover_url,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PinID     int64     `json:"pin_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
