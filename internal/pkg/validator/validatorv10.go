package validator

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gobudget/internal/pkg/otp"
)

var ErrTranslatorNotFound = errors.New("translator not found")

// V10ValidationError maps snake_case field names to translated messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	b, err := json.Marshal(map[string]string(vs))
	if err != nil || len(vs) == 0 {
		return "validation error"
	}
	return string(b)
}

func (vs V10ValidationError) Values() map[string]string { return vs }

// rule is a project specific tag with its English message. {0} is the field.
type rule struct {
	tag     string
	message string
	check   validator.Func
}

var rules = []rule{
	{
		tag:     "otp",
		message: "{0} must be a 6-digit code",
		check: func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && otp.Valid(s)
		},
	},
}

type V10Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewV10Validator builds a validator with English messages for the built-in
// tags and the rules above.
func NewV10Validator() (*V10Validator, error) {
	locale := en.New()
	trans, ok := ut.New(locale, locale).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	for _, r := range rules {
		if err := register(v, trans, r); err != nil {
			return nil, err
		}
	}

	return &V10Validator{validate: v, trans: trans}, nil
}

func register(v *validator.Validate, trans ut.Translator, r rule) error {
	if err := v.RegisterValidation(r.tag, r.check); err != nil {
		return err
	}

	return v.RegisterTranslation(r.tag, trans,
		func(t ut.Translator) error { return t.Add(r.tag, r.message, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				slog.Warn("failed to translate validation error", "tag", fe.Tag(), "error", err)
				return fe.Error()
			}
			return msg
		},
	)
}

// Validate returns nil, a V10ValidationError, or the validator's own error
// when data is not a struct.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err
	}

	out := make(V10ValidationError, len(fes))
	for _, fe := range fes {
		out[lo.SnakeCase(fe.Field())] = fe.Translate(v.trans)
	}
	return out
}
