package validator

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"konsert-backend/pkg/utils"
)

var (
	initOnce  sync.Once
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	stripper  *bluemonday.Policy
)

// Init registers the custom tags on both the package validator and gin's
// binding engine. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()
		stripper = bluemonday.StrictPolicy()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
	v.RegisterValidation("http_url", validateHTTPURL)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// SanitizeHTML keeps user-generated markup that is safe to render.
func SanitizeHTML(html string) string {
	Init()
	return strings.TrimSpace(sanitizer.Sanitize(html))
}

// SanitizeString removes all markup.
func SanitizeString(s string) string {
	Init()
	return strings.TrimSpace(stripper.Sanitize(s))
}

func validateSlug(fl validator.FieldLevel) bool {
	return utils.ValidateSlug(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func validateHTTPURL(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return ValidateURL(value)
}

func NormalizeSpaces(s string) string {
	space := regexp.MustCompile(`\s+`)
	return strings.TrimSpace(space.ReplaceAllString(s, " "))
}

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
