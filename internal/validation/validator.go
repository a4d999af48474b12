package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)

// FieldErrors maps a form field name to its messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	return "invalid form: " + strings.Join(fe.Messages(), ", ")
}

// Messages renders each field as "field msg|msg", sorted by field name.
func (fe FieldErrors) Messages() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f+" "+strings.Join(fe[f], "|"))
	}
	return out
}

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Validator implements echo.Validator over go-playground/validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "state", func(fl validator.FieldLevel) bool {
		return slices.Contains(dto.States, fl.Field().String())
	})
	mustRegister(v, "genre", func(fl validator.FieldLevel) bool {
		return slices.Contains(dto.Genres, fl.Field().String())
	})
	mustRegister(v, "starttime", func(fl validator.FieldLevel) bool {
		_, err := dto.ParseStartTime(fl.Field().String())
		return err == nil
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate returns FieldErrors when i fails its validate tags.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fieldName(fe), message(fe))
	}
	return out
}

// fieldName strips the dive index so genres[2] reports as genres.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Select at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "url":
		return "Invalid URL."
	case "numeric":
		return "Not a valid integer value."
	case "phone":
		return "Invalid phone number, use the format 123-456-7890."
	case "state":
		return "Not a valid choice."
	case "genre":
		return fmt.Sprintf("'%v' is not a valid choice for this field.", fe.Value())
	case "starttime":
		return "Not a valid datetime value."
	default:
		return "Invalid value."
	}
}
