package echoapi

import (
	"github.com/go-playground/validator/v10"

	"edupro/core"
	"edupro/core/user"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// LandingResponse carries the route a client should navigate to next.
	LandingResponse struct {
		Landing string `json:"landing"`
	}

	// QuizResponse carries generated questions; Questions is null when the
	// advisory service could not deliver and the client should fall back to
	// its built-in quiz.
	QuizResponse struct {
		Questions []core.QuizQuestion `json:"questions"`
	}

	TipResponse struct {
		Tip string `json:"tip"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	// username matching is case-sensitive; trim only
	lr.Username = core.CleanString(lr.Username)
	return validate.Struct(lr)
}
