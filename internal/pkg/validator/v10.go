package validator

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/dinebite/internal/pkg/strcase"
)

// PasswordMinLength counts characters. PasswordMaxLength counts bytes, the
// bcrypt input ceiling.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

// ErrTranslatorNotFound is returned when the english translator is missing.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// FieldErrors maps snake_case field names to readable messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation error"
	}

	keys := slices.Sorted(maps.Keys(fe))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}

	return strings.Join(parts, ", ")
}

// Fields returns the underlying map.
func (fe FieldErrors) Fields() map[string]string {
	return fe
}

// V10 implements Validator with go-playground/validator.
type V10 struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewV10 builds a validator with english messages and the custom rules.
func NewV10() (*V10, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strcase.ToLowerSnake(f.Name)
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, trans); err != nil {
		return nil, err
	}

	return &V10{validate: validate, translator: trans}, nil
}

// Validate returns FieldErrors when data breaks any rule.
func (v *V10) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := make(FieldErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Translate(v.translator)
	}

	return out
}

func registerRules(validate *validator.Validate, trans ut.Translator) error {
	err := validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.RuneCountInString(s) >= PasswordMinLength && len(s) <= PasswordMaxLength
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation("password", trans,
		func(t ut.Translator) error {
			return t.Add("password", "{0} must be 8-72 characters", false)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Field() + " is invalid"
			}
			return msg
		},
	)
}
