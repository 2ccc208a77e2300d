package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	ugcPolicy *bluemonday.Policy
)

func Init() {
	validate = validator.New()
	// Read the same tags gin binding reads, so Validate applies the
	// identical rules to requests arriving outside HTTP.
	validate.SetTagName("binding")
	ugcPolicy = bluemonday.UGCPolicy()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("username", validateUsername)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

// SanitizeHTML keeps the user-generated-content subset of HTML.
func SanitizeHTML(html string) string {
	return ugcPolicy.Sanitize(html)
}

// SanitizeString strips all markup.
func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_]+$`, username)
	return matched && len(username) >= 3 && len(username) <= 30
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func TrimSpaces(s string) string {
	return strings.TrimSpace(s)
}
