package domain

import "time"

// Tweet is a short post. By is a value copy of the author taken when the
// tweet was posted; later edits to the user are not reflected here.
type Tweet struct {
	TweetID   string     `json:"tweet_id"   validate:"required,uuid"`
	Content   string     `json:"content"    validate:"required,min=1,max=256"`
	CreatedAt time.Time  `json:"created_at" validate:"required"`
	UpdatedAt *time.Time `json:"updated_at"`
	By        User       `json:"by"`
}

// TweetPost is the create payload. TweetID and CreatedAt are filled in by
// the service when absent.
type TweetPost struct {
	TweetID   string     `json:"tweet_id"   validate:"omitempty,uuid"`
	Content   string     `json:"content"    validate:"required,min=1,max=256"`
	CreatedAt *time.Time `json:"created_at"`
	By        User       `json:"by"`
}

// TweetUpdate carries the only mutable tweet field.
type TweetUpdate struct {
	Content string `json:"content" validate:"required,min=1,max=256"`
}
