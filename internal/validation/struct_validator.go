package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Tag names for custom struct validations
const (
	TagEntityType = "entitytype"
)

var entityTypePattern = regexp.MustCompile(`^[A-Z0-9_:]+$`)

var (
	structOnce     sync.Once
	structValidate *validator.Validate
)

// Struct returns the shared struct validator with the custom tags registered.
// validator.Validate caches struct metadata and is safe for concurrent use.
func Struct() *validator.Validate {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation(TagEntityType, validateEntityType)
		structValidate = v
	})
	return structValidate
}

// NormalizeEntityType upper-cases and trims an entity type key
func NormalizeEntityType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func validateEntityType(fl validator.FieldLevel) bool {
	return entityTypePattern.MatchString(fl.Field().String())
}
