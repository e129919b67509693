package ports

import (
	"context"

	"github.com/chirper/chirper-api/internal/core/domain"
)

// TweetService defines use-case operations for tweets.
type TweetService interface {
	Post(ctx context.Context, in domain.TweetPost) (*domain.Tweet, error)
	List(ctx context.Context) ([]domain.Tweet, error)
	GetByID(ctx context.Context, id string) (*domain.Tweet, error)
	Update(ctx context.Context, id string, in domain.TweetUpdate) (*domain.Tweet, error)
	Delete(ctx context.Context, id string) (*domain.Tweet, error)
}
