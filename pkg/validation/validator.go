package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	mu       sync.RWMutex
	patterns = map[string]*regexp.Regexp{}
	binders  = map[string]validator.Func{}
	engine   = validator.New()
)

// RegisterPattern compiles pattern and registers it as a validator tag.
// The value must fully match; call it from package init, before any validation runs.
func RegisterPattern(tag, pattern string) *regexp.Regexp {
	re := regexp.MustCompile(pattern)
	mu.Lock()
	patterns[tag] = re
	mu.Unlock()
	if err := engine.RegisterValidation(tag, patternFunc(re)); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
	return re
}

func patternFunc(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return re.MatchString(fl.Field().String())
	}
}

// RegisterBindingFunc registers a string check as a tag usable in request structs bound by Gin.
// Like RegisterPattern it must run from package init, before Init.
func RegisterBindingFunc(tag string, ok func(string) bool) {
	fn := func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && ok(fl.Field().String())
	}
	mu.Lock()
	binders[tag] = fn
	mu.Unlock()
	if err := engine.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Matches reports whether value satisfies the registered pattern tag.
func Matches(tag, value string) bool {
	return engine.Var(value, tag) == nil
}

func isPatternTag(tag string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := patterns[tag]
	return ok
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
// - Registers the binding funcs (e.g. bank_country); format patterns stay internal to the domain.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("country2", "len=2,alpha")
		v.RegisterAlias("nonzero", "required")

		mu.RLock()
		defer mu.RUnlock()
		for tag, fn := range binders {
			_ = v.RegisterValidation(tag, fn)
		}
	}
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required", "nonzero":
		return "is required"
	case "len":
		if param != "" {
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "invalid length"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "alpha":
		return "must contain alphabetic characters only"
	case "alphanum":
		return "must contain alphanumeric characters only"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email"
	case "iso3166_1_alpha2", "country2":
		return "must be a two-letter country code"
	case "bank_country":
		return "is not a supported bank account country"
	}

	if isPatternTag(tag) {
		return "has an invalid format"
	}
	if param != "" {
		return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
	}
	return fmt.Sprintf("validation failed for '%s'", tag)
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
