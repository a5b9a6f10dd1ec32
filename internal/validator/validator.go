package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SkillProof-Labs/verification-service/internal/models"
)

// Validator wraps go-playground/validator with the custom rules used
// by the verification service.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{validate: v}
}

// Validate checks a request struct and returns a flattened error
// listing every failed field.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if ok := isValidationErrors(err, &ve); !ok {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// ValidateContentHash checks a "0x"-prefixed 64-hex-char digest field.
func ValidateContentHash(fl validator.FieldLevel) bool {
	_, err := models.ParseHash256(fl.Field().String())
	return err == nil
}

// ValidateAssessmentStatus restricts status fields to the known
// lifecycle states.
func ValidateAssessmentStatus(fl validator.FieldLevel) bool {
	valid := []models.AssessmentStatus{
		models.StatusNotStarted,
		models.StatusStarted,
		models.StatusAnswersSubmitted,
		models.StatusVerifying,
		models.StatusCompleted,
	}

	value := fl.Field().String()
	for _, s := range valid {
		if string(s) == value {
			return true
		}
	}
	return false
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("content_hash", ValidateContentHash)
	validate.RegisterValidation("assessment_status", ValidateAssessmentStatus)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
