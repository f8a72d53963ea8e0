package pipeline

import (
	"github.com/go-playground/validator/v10"

	"codeberg.org/snonux/gospeltts/internal/language"
)

// TextRequest is one conversion request. It is built per submission and
// not modified afterwards.
type TextRequest struct {
	RawText        string `validate:"required"`
	SourceLanguage string `validate:"required,langcode"`
	TargetLanguage string `validate:"required,langcode"`
	Accent         string `validate:"omitempty,accent"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		return contains(language.Codes(), fl.Field().String())
	})
	_ = v.RegisterValidation("accent", func(fl validator.FieldLevel) bool {
		return contains(language.AccentTLDs(), fl.Field().String())
	})
	return v
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
