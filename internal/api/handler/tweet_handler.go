package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper/chirper-api/internal/core/domain"
	"github.com/chirper/chirper-api/internal/core/ports"
)

// TweetHandler handles HTTP requests for tweets.
type TweetHandler struct {
	service ports.TweetService
}

func NewTweetHandler(service ports.TweetService) *TweetHandler {
	return &TweetHandler{service: service}
}

// List returns every tweet in storage order.
//
// @Summary      List tweets
// @Tags         tweets
// @Produce      json
// @Success      200  {array}   tweetResponse
// @Failure      500  {object}  errorResponse
// @Router       / [get]
func (h *TweetHandler) List(c echo.Context) error {
	tweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponses(tweets))
}

// Post creates a tweet.
//
// @Summary      Post a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Param        body  body      postTweetRequest  true  "Tweet"
// @Success      201   {object}  tweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /post [post]
func (h *TweetHandler) Post(c echo.Context) error {
	var req postTweetRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, bodyFields{date: "by.birth_date", timestamp: "created_at"})
	}

	tweet, err := h.service.Post(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTweetResponse(*tweet))
}

// Get handles GET /tweets/:tweet_id.
//
// @Summary      Get a tweet by id
// @Tags         tweets
// @Produce      json
// @Param        tweet_id  path      string  true  "Tweet id"
// @Success      200       {object}  tweetResponse
// @Failure      404       {object}  errorResponse
// @Router       /tweets/{tweet_id} [get]
func (h *TweetHandler) Get(c echo.Context) error {
	tweet, err := h.service.GetByID(c.Request().Context(), c.Param("tweet_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponse(*tweet))
}

// Update replaces the content of a tweet.
//
// @Summary      Update a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Param        tweet_id  path      string              true  "Tweet id"
// @Param        body      body      updateTweetRequest  true  "Tweet; only content is used"
// @Success      200       {object}  tweetResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /tweets/{tweet_id}/update [put]
func (h *TweetHandler) Update(c echo.Context) error {
	var req updateTweetRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, bodyFields{})
	}

	tweet, err := h.service.Update(c.Request().Context(), c.Param("tweet_id"), domain.TweetUpdate{Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponse(*tweet))
}

// Delete removes a tweet and returns the removed record.
//
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Param        tweet_id  path      string  true  "Tweet id"
// @Success      200       {object}  tweetResponse
// @Failure      404       {object}  errorResponse
// @Router       /tweets/{tweet_id}/delete [delete]
func (h *TweetHandler) Delete(c echo.Context) error {
	tweet, err := h.service.Delete(c.Request().Context(), c.Param("tweet_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponse(*tweet))
}
