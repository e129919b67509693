package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTweet_UnmarshalLegacyRecord(t *testing.T) {
	raw := `{"tweet_id":"3d2c1b0a-9f8e-4d7c-8b6a-5f4e3d2c1b0a","content":"hello","created_at":"2022-03-01 10:11:12.123456","update_at":"None",` +
		`"by":{"user_id":"0b8c5d4e-8f6a-4c1e-9a7b-2d3e4f5a6b7c","email":"a@x.com","first_name":"A","last_name":"B","birth_date":"None"}}`

	var tw Tweet
	if err := json.Unmarshal([]byte(raw), &tw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2022, time.March, 1, 10, 11, 12, 123456000, time.UTC)
	if !tw.CreatedAt.Equal(want) {
		t.Fatalf("expected created_at %s, got %s", want, tw.CreatedAt)
	}
	if tw.UpdatedAt != nil {
		t.Fatalf("expected no updated_at, got %s", tw.UpdatedAt)
	}
	if tw.Content != "hello" || tw.By.Email != "a@x.com" {
		t.Fatalf("unexpected tweet: %+v", tw)
	}
	if _, ok := tw.By.BirthDate.Get(); ok {
		t.Fatal("expected no birth date")
	}
}

func TestTweet_UnmarshalLegacyUpdateKey(t *testing.T) {
	var tw Tweet
	raw := `{"tweet_id":"3d2c1b0a-9f8e-4d7c-8b6a-5f4e3d2c1b0a","content":"x","created_at":"2022-03-01 10:11:12","update_at":"2022-03-02 08:00:00"}`
	if err := json.Unmarshal([]byte(raw), &tw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tw.UpdatedAt == nil || !tw.UpdatedAt.Equal(time.Date(2022, time.March, 2, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected updated_at: %v", tw.UpdatedAt)
	}
}

func TestTweet_RoundTripCurrentShape(t *testing.T) {
	created := time.Date(2024, time.May, 6, 7, 8, 9, 500, time.UTC)
	updated := created.Add(time.Hour)
	in := Tweet{
		TweetID:   "3d2c1b0a-9f8e-4d7c-8b6a-5f4e3d2c1b0a",
		Content:   "hi",
		CreatedAt: created,
		UpdatedAt: &updated,
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out Tweet
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.CreatedAt.Equal(created) || out.UpdatedAt == nil || !out.UpdatedAt.Equal(updated) {
		t.Fatalf("timestamps changed: %+v", out)
	}
}

func TestTweet_UnmarshalRejectsBadTimestamp(t *testing.T) {
	for _, raw := range []string{
		`{"created_at":"01/03/2022"}`,
		`{"created_at":"2022-03-01T10:00:00Z","updated_at":12}`,
	} {
		var tw Tweet
		if err := json.Unmarshal([]byte(raw), &tw); err == nil {
			t.Fatalf("%s: expected an error", raw)
		}
	}
}
