package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate    *validator.Validate
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

var questionTypes = map[string]bool{
	"yesNo":         true,
	"text":          true,
	"textarea":      true,
	"checkbox":      true,
	"radio":         true,
	"select":        true,
	"date":          true,
	"number":        true,
	"checkboxGroup": true,
}

var variantTypes = map[string]bool{
	"weight": true,
	"volume": true,
	"unit":   true,
	"pack":   true,
}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterValidation("slug", validateSlug)
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("variant_type", validateVariantType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonTagName makes validator namespaces follow the JSON field names.
func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return questionTypes[fl.Field().String()]
}

func validateVariantType(fl validator.FieldLevel) bool {
	return variantTypes[fl.Field().String()]
}
