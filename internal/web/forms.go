package web

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterForm struct {
	Username        string `validate:"required,min=2,max=80"`
	Email           string `validate:"required,email,max=120"`
	Password        string `validate:"required,min=6,max=72"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required"`
}

type AccountForm struct {
	Username string `validate:"required,min=2,max=80"`
	Email    string `validate:"required,email,max=120"`
}

type PostForm struct {
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	Description string `validate:"required"`
}

var fieldMessages = map[string]map[string]string{
	"Username": {
		"required": "username is required",
		"min":      "username is too short",
		"max":      "username is too long",
	},
	"Email": {
		"required": "email is required",
		"email":    "email address is not valid",
		"max":      "email is too long",
	},
	"Password": {
		"required": "password is required",
		"min":      "password must be at least 6 characters",
		"max":      "password is too long",
	},
	"ConfirmPassword": {
		"required": "password confirmation is required",
		"eqfield":  "passwords do not match",
	},
	"Title":       {"required": "title is required"},
	"Author":      {"required": "author is required"},
	"Description": {"required": "description is required"},
}

// validateForm returns per-field messages keyed by field name, or nil
// when the form is valid.
func validateForm(form any) map[string]any {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]any{"form": "invalid form"}
	}

	details := make(map[string]any, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		msg := "invalid value"
		if byTag, ok := fieldMessages[field]; ok {
			if m, ok := byTag[fieldErr.Tag()]; ok {
				msg = m
			}
		}
		details[field] = msg
	}
	return details
}
