package handlers

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 7 to 15 digits, optional leading +, spaces and dashes allowed between groups.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

// RegisterValidators adds the custom binding tags used by the DTOs and reports
// field names by their JSON name. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("role", validateRole); err != nil {
		return err
	}
	return v.RegisterValidation("phone", validatePhone)
}

func validateRole(fl validator.FieldLevel) bool {
	_, err := domain.ParseRole(fl.Field().String())
	return err == nil
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return phonePattern.MatchString(phone) && digits >= 7 && digits <= 15
}
