package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	plain     *bluemonday.Policy

	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func init() {
	sanitizer = bluemonday.UGCPolicy()
	plain = bluemonday.StrictPolicy()
}

func Init() {
	validate = validator.New()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
	v.RegisterValidation("hexcolor6", validateHexColor)
	v.RegisterValidation("template_type", validateTemplateType)
	v.RegisterValidation("page_type", validatePageType)
}

func Validate(s interface{}) error {
	if validate == nil {
		Init()
	}
	return validate.Struct(s)
}

// SanitizeHTML keeps safe inline markup in rich text.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

// SanitizeString strips every tag.
func SanitizeString(s string) string {
	return plain.Sanitize(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorPattern.MatchString(fl.Field().String())
}

func validateTemplateType(fl validator.FieldLevel) bool {
	return blocks.IsTemplateType(fl.Field().String())
}

func validatePageType(fl validator.FieldLevel) bool {
	return blocks.IsPageType(fl.Field().String())
}

// ValidateBinding checks obj against its gin binding tags, custom validations included.
func ValidateBinding(obj interface{}) error {
	if validate == nil {
		Init()
	}
	return binding.Validator.ValidateStruct(obj)
}
