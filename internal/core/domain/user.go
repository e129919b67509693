package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: %w", ErrInvalidDate, s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: must be a string: %w", ErrInvalidDate, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// OptionalDate is a nullable Date. Older deployments wrote absent birth dates
// as the string "None"; it decodes as null.
type OptionalDate struct {
	date  Date
	valid bool
}

// SomeDate wraps d as a present value.
func SomeDate(d Date) OptionalDate {
	return OptionalDate{date: d, valid: true}
}

// Get returns the date and whether it is present.
func (o OptionalDate) Get() (Date, bool) {
	return o.date, o.valid
}

func (o OptionalDate) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return o.date.MarshalJSON()
}

func (o *OptionalDate) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	switch string(trimmed) {
	case "null", `"None"`, `""`:
		*o = OptionalDate{}
		return nil
	}
	var d Date
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*o = SomeDate(d)
	return nil
}

// User is the public view of an account. It never carries a password.
type User struct {
	UserID    string       `json:"user_id"    validate:"required,uuid"`
	Email     string       `json:"email"      validate:"required,email"`
	FirstName string       `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string       `json:"last_name"  validate:"required,min=1,max=50"`
	BirthDate OptionalDate `json:"birth_date"`
}

// UserRegister is the create/update payload. UserID is optional on create:
// when empty the service generates one.
type UserRegister struct {
	UserID    string       `json:"user_id"    validate:"omitempty,uuid"`
	Email     string       `json:"email"      validate:"required,email"`
	FirstName string       `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string       `json:"last_name"  validate:"required,min=1,max=50"`
	BirthDate OptionalDate `json:"birth_date"`
	Password  string       `json:"password"   validate:"required,min=8,max=64"`
}

// UserAccount is the persisted user record.
type UserAccount struct {
	User
	Password string `json:"password"`
}

// Public strips the password.
func (a UserAccount) Public() User {
	return a.User
}

// NewUserAccount builds the persisted record for a validated registration.
func NewUserAccount(id string, in UserRegister) UserAccount {
	return UserAccount{
		User: User{
			UserID:    id,
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			BirthDate: in.BirthDate,
		},
		Password: in.Password,
	}
}

// Apply overwrites every mutable field with the values from in. The
// identifier is left untouched.
func (a *UserAccount) Apply(in UserRegister) {
	a.Email = in.Email
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.BirthDate = in.BirthDate
	a.Password = in.Password
}
