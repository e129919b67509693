package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestOptionalDate_JSON(t *testing.T) {
	cases := []struct {
		in      string
		present bool
		want    string
	}{
		{`"1990-04-01"`, true, "1990-04-01"},
		{`null`, false, ""},
		{`"None"`, false, ""},
		{`""`, false, ""},
	}

	for _, tc := range cases {
		var d OptionalDate
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.in, err)
		}
		got, ok := d.Get()
		if ok != tc.present || (ok && got.String() != tc.want) {
			t.Fatalf("%s: got %v %v", tc.in, got, ok)
		}
	}

	var bad OptionalDate
	if err := json.Unmarshal([]byte(`"01/04/1990"`), &bad); err == nil {
		t.Fatal("expected an error for a non ISO date")
	}
}

func TestUserAccount_JSON(t *testing.T) {
	acc := NewUserAccount("0b8c5d4e-8f6a-4c1e-9a7b-2d3e4f5a6b7c", UserRegister{
		Email:     "a@x.com",
		FirstName: "A",
		LastName:  "B",
		BirthDate: SomeDate(NewDate(1990, time.April, 1)),
		Password:  "abcdefgh",
	})

	data, err := json.Marshal(acc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"user_id":"0b8c5d4e-8f6a-4c1e-9a7b-2d3e4f5a6b7c","email":"a@x.com","first_name":"A","last_name":"B","birth_date":"1990-04-01","password":"abcdefgh"}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}

	public, err := json.Marshal(acc.Public())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(public), "password") {
		t.Fatalf("public view leaked the password: %s", public)
	}
}

func TestUserAccount_Apply(t *testing.T) {
	acc := NewUserAccount("id-1", UserRegister{Email: "a@x.com", FirstName: "A", LastName: "B", Password: "abcdefgh"})
	acc.Apply(UserRegister{UserID: "id-2", Email: "b@x.com", FirstName: "C", LastName: "D", Password: "12345678"})

	if acc.UserID != "id-1" {
		t.Fatalf("identifier changed to %s", acc.UserID)
	}
	if acc.Email != "b@x.com" || acc.FirstName != "C" || acc.LastName != "D" || acc.Password != "12345678" {
		t.Fatalf("unexpected account: %+v", acc)
	}
}

func TestTweet_JSONUsesUpdatedAt(t *testing.T) {
	data, err := json.Marshal(Tweet{TweetID: "t", Content: "c", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"updated_at":null`) || !strings.Contains(string(data), `"birth_date":null`) {
		t.Fatalf("unexpected json: %s", data)
	}
}
