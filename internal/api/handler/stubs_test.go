package handler

import (
	"context"

	"github.com/chirper/chirper-api/internal/core/domain"
)

type stubUserService struct {
	registerFn     func(ctx context.Context, in domain.UserRegister) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	listFn         func(ctx context.Context) ([]domain.User, error)
	getFn          func(ctx context.Context, id string) (*domain.User, error)
	updateFn       func(ctx context.Context, id string, in domain.UserRegister) (*domain.User, error)
	deleteFn       func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, in domain.UserRegister) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id string, in domain.UserRegister) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.deleteFn(ctx, id)
}

type stubTweetService struct {
	postFn   func(ctx context.Context, in domain.TweetPost) (*domain.Tweet, error)
	listFn   func(ctx context.Context) ([]domain.Tweet, error)
	getFn    func(ctx context.Context, id string) (*domain.Tweet, error)
	updateFn func(ctx context.Context, id string, in domain.TweetUpdate) (*domain.Tweet, error)
	deleteFn func(ctx context.Context, id string) (*domain.Tweet, error)
}

func (s *stubTweetService) Post(ctx context.Context, in domain.TweetPost) (*domain.Tweet, error) {
	return s.postFn(ctx, in)
}

func (s *stubTweetService) List(ctx context.Context) ([]domain.Tweet, error) {
	return s.listFn(ctx)
}

func (s *stubTweetService) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	return s.getFn(ctx, id)
}

func (s *stubTweetService) Update(ctx context.Context, id string, in domain.TweetUpdate) (*domain.Tweet, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubTweetService) Delete(ctx context.Context, id string) (*domain.Tweet, error) {
	return s.deleteFn(ctx, id)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}
