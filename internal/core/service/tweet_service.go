package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirper/chirper-api/internal/core/domain"
	"github.com/chirper/chirper-api/internal/core/ports"
	"github.com/chirper/chirper-api/internal/pkg/metrics"
)

// TweetService implements CRUD over the tweet collection.
type TweetService struct {
	tweets ports.RecordStore[domain.Tweet]
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewTweetService(tweets ports.RecordStore[domain.Tweet], logger zerolog.Logger) *TweetService {
	return &TweetService{
		tweets: tweets,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  domain.NewID,
	}
}

// Post validates and appends a tweet. The author is stored exactly as
// supplied; it is not checked against the user collection.
func (s *TweetService) Post(ctx context.Context, in domain.TweetPost) (*domain.Tweet, error) {
	in.TweetID = domain.CanonicalID(in.TweetID)
	in.By.UserID = domain.CanonicalID(in.By.UserID)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	tweet := domain.Tweet{
		TweetID:   in.TweetID,
		Content:   in.Content,
		CreatedAt: s.now(),
		By:        in.By,
	}
	if tweet.TweetID == "" {
		tweet.TweetID = s.newID()
	}
	if in.CreatedAt != nil {
		tweet.CreatedAt = in.CreatedAt.UTC()
	}

	err := s.tweets.Mutate(ctx, func(all []domain.Tweet) ([]domain.Tweet, error) {
		return append(all, tweet), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("tweet_id", tweet.TweetID).Msg("failed to post tweet")
		return nil, fmt.Errorf("post tweet: %w", err)
	}

	metrics.TweetsPostedTotal.Inc()
	s.logger.Info().
		Str("tweet_id", tweet.TweetID).
		Str("user_id", tweet.By.UserID).
		Msg("tweet posted")

	return &tweet, nil
}

func (s *TweetService) List(ctx context.Context) ([]domain.Tweet, error) {
	all, err := s.tweets.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return all, nil
}

func (s *TweetService) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	all, err := s.tweets.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tweet: %w", err)
	}

	i := indexOfTweet(all, id)
	if i < 0 {
		return nil, domain.ErrTweetNotFound
	}
	return &all[i], nil
}

// Update replaces the content of the first tweet matching id and stamps
// updated_at. The identifier, created_at and author snapshot are kept.
func (s *TweetService) Update(ctx context.Context, id string, in domain.TweetUpdate) (*domain.Tweet, error) {
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	var updated domain.Tweet
	err := s.tweets.Mutate(ctx, func(all []domain.Tweet) ([]domain.Tweet, error) {
		i := indexOfTweet(all, id)
		if i < 0 {
			return nil, domain.ErrTweetNotFound
		}
		now := s.now()
		all[i].Content = in.Content
		all[i].UpdatedAt = &now
		updated = all[i]
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}

	s.logger.Info().Str("tweet_id", updated.TweetID).Msg("tweet updated")
	return &updated, nil
}

// Delete removes the first tweet matching id and returns it.
func (s *TweetService) Delete(ctx context.Context, id string) (*domain.Tweet, error) {
	var removed domain.Tweet
	err := s.tweets.Mutate(ctx, func(all []domain.Tweet) ([]domain.Tweet, error) {
		i := indexOfTweet(all, id)
		if i < 0 {
			return nil, domain.ErrTweetNotFound
		}
		removed = all[i]
		return slices.Delete(all, i, i+1), nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete tweet: %w", err)
	}

	s.logger.Info().Str("tweet_id", removed.TweetID).Msg("tweet deleted")
	return &removed, nil
}

func indexOfTweet(all []domain.Tweet, id string) int {
	return slices.IndexFunc(all, func(t domain.Tweet) bool {
		return domain.SameID(t.TweetID, id)
	})
}
