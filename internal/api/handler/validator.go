package handler

import (
	"github.com/chirper/chirper-api/internal/core/domain"
)

// echoValidator lets Echo call c.Validate(req) with the same rules and
// messages the domain uses.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return domain.Validate(i)
}
