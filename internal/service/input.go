package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SeatingAreaInput is the payload of insert and update.  Every field is
// required; pointers tell a missing field apart from its zero value.
type SeatingAreaInput struct {
	Name            *string `json:"name" validate:"required"`
	Bookable        *bool   `json:"bookable" validate:"required"`
	BookableOnline  *bool   `json:"bookable_online" validate:"required"`
	BookingPriority *int    `json:"booking_priority" validate:"required,min=1,max=10"`
	Note            *string `json:"note" validate:"required"`
	InternalNote    *string `json:"internal_note" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeSeatingAreaInput parses a JSON body.  Unknown fields, wrong types
// and malformed JSON are validation errors of op.
func DecodeSeatingAreaInput(op string, raw []byte) (SeatingAreaInput, error) {
	var in SeatingAreaInput
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return in, validationError(op, "request body is empty")
		case errors.As(err, &typeErr):
			return in, validationError(op, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
		default:
			return in, validationError(op, err.Error())
		}
	}
	if dec.More() {
		return in, validationError(op, "request body must contain a single JSON object")
	}
	return in, nil
}

// Validate checks presence and ranges.  It returns nil or a validation
// *Error of op.
func (in SeatingAreaInput) Validate(op string) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return validationError(op, describe(verrs[0]))
		}
		return validationError(op, err.Error())
	}
	if strings.TrimSpace(*in.Name) == "" {
		return validationError(op, "name must not be blank")
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max":
		return fe.Field() + " must be between 1 and 10"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
