package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"barrierfree/internal/models"
)

// formValidator reports errors under the form field names.
var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// contactLabels are the human names of the contact form fields.
var contactLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"subject": "Subject",
	"message": "Message",
}

// normalizeContact trims surrounding whitespace from every field.
func normalizeContact(msg models.ContactMessage) models.ContactMessage {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	return msg
}

// validateContact checks a contact submission and returns one message per
// invalid field, keyed by form field name. An empty map means valid.
func validateContact(msg models.ContactMessage) map[string]string {
	errs := map[string]string{}

	err := formValidator.Struct(msg)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = contactMessage(field, fe)
	}
	return errs
}

// contactMessage turns a validation failure into text for the visitor.
func contactMessage(field string, fe validator.FieldError) string {
	label := contactLabels[field]
	if label == "" {
		label = field
	}
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Please enter a valid email address."
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters).", label, fe.Param())
	case "oneof":
		return "Please choose a subject from the list."
	default:
		return label + " is invalid."
	}
}
