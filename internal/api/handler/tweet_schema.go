package handler

import (
	"time"

	"github.com/chirper/chirper-api/internal/core/domain"
)

// --- Request / Response types ---

type authorRequest struct {
	UserID    string              `json:"user_id"`
	Email     string              `json:"email"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	BirthDate domain.OptionalDate `json:"birth_date" swaggertype:"string" format:"date"`
}

type postTweetRequest struct {
	TweetID   string        `json:"tweet_id,omitempty"`
	Content   string        `json:"content"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
	By        authorRequest `json:"by"`
}

// updateTweetRequest accepts a full tweet body; only content is used.
type updateTweetRequest struct {
	Content string `json:"content"`
}

type tweetResponse struct {
	TweetID   string       `json:"tweet_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
	By        userResponse `json:"by"`
}

// --- Mappers ---

func (r postTweetRequest) toDomain() domain.TweetPost {
	return domain.TweetPost{
		TweetID:   r.TweetID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		By: domain.User{
			UserID:    r.By.UserID,
			Email:     r.By.Email,
			FirstName: r.By.FirstName,
			LastName:  r.By.LastName,
			BirthDate: r.By.BirthDate,
		},
	}
}

func toTweetResponse(t domain.Tweet) tweetResponse {
	return tweetResponse{
		TweetID:   t.TweetID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		By:        toUserResponse(t.By),
	}
}

func toTweetResponses(tweets []domain.Tweet) []tweetResponse {
	out := make([]tweetResponse, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, toTweetResponse(t))
	}
	return out
}
