package validation

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func init() {
	RegisterPattern("test_digits4", `^[0-9]{4}$`)
	RegisterBindingFunc("test_upper", func(v string) bool { return v != "" && v == strings.ToUpper(v) })
}

func TestRegisterBindingFunc(t *testing.T) {
	assert.True(t, Matches("test_upper", "ET"))
	assert.False(t, Matches("test_upper", "et"))

	Init()
	type req struct {
		Country string `json:"country" binding:"test_upper"`
	}
	err := binding.Validator.ValidateStruct(&req{Country: "et"})
	assert.Error(t, err)
	assert.NoError(t, binding.Validator.ValidateStruct(&req{Country: "ET"}))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("test_digits4", "1234"))
	assert.False(t, Matches("test_digits4", "123"))
	assert.False(t, Matches("test_digits4", "12a4"))
	assert.False(t, Matches("test_digits4", ""))
	assert.False(t, Matches("test_digits4", "1234\n"))
}

func TestToDetails(t *testing.T) {
	assert.Nil(t, ToDetails(nil))

	var syntaxErr *json.SyntaxError
	err := json.Unmarshal([]byte("{"), &struct{}{})
	assert.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	type req struct {
		Code    string `json:"code" validate:"test_digits4"`
		Country string `json:"country" validate:"required,len=2"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string { return fld.Tag.Get("json") })
	_ = v.RegisterValidation("test_digits4", patternFunc(patterns["test_digits4"]))

	details := ToDetails(v.Struct(req{Code: "xx"}))
	assert.Equal(t, "has an invalid format", details["code"])
	assert.Equal(t, "is required", details["country"])
}
