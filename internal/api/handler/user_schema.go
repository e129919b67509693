package handler

import (
	"github.com/chirper/chirper-api/internal/core/domain"
)

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error   string                  `json:"error"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

// --- Request / Response types ---

type signupRequest struct {
	UserID    string              `json:"user_id,omitempty"`
	Email     string              `json:"email"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	BirthDate domain.OptionalDate `json:"birth_date"         swaggertype:"string" format:"date" example:"1990-04-01"`
	Password  string              `json:"password"`
}

// loginRequest is bound from an application/x-www-form-urlencoded body.
type loginRequest struct {
	Email    string `form:"email"    json:"email"    validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type userResponse struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date" format:"date" example:"1990-04-01"`
}

// --- Mappers ---

func (r signupRequest) toDomain() domain.UserRegister {
	return domain.UserRegister{
		UserID:    r.UserID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: r.BirthDate,
		Password:  r.Password,
	}
}

func toUserResponse(u domain.User) userResponse {
	resp := userResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if d, ok := u.BirthDate.Get(); ok {
		s := d.String()
		resp.BirthDate = &s
	}
	return resp
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
