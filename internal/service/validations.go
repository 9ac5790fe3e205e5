package service

import (
	"regexp"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/limbo/timely/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once

	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		// Exactly #RRGGBB, the builtin hexcolor tag also allows the short form
		validate.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
			return hexColorRe.MatchString(fl.Field().String())
		})
		validate.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
			return entity.IsValidMood(fl.Field().String())
		})
	})
}
