package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/fitplanner/internal"
)

var validate = validator.New()

// ValidateProfile rejects profiles whose numbers would make the BMR meaningless.
func ValidateProfile(p *internal.UserProfile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrInvalidProfile, err)
	}
	return nil
}

func ValidatePreferences(p *internal.PlanPreferences) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrInvalidProfile, err)
	}
	return nil
}
