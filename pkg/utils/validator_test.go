package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Username        string `form:"username" validate:"required,min=3,username"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

type jsonOnly struct {
	Quantity int `json:"quantity,omitempty" validate:"gte=1"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(signupForm{
		Username:        "alice.b@x+1",
		Password:        "s3cretpass",
		PasswordConfirm: "s3cretpass",
	})

	assert.Nil(t, errs)
}

func TestValidateStruct_ReportsFormFieldNames(t *testing.T) {
	errs := ValidateStruct(signupForm{
		Username:        "al ice",
		Password:        "s3cretpass",
		PasswordConfirm: "different1",
	})

	assert.Equal(t, map[string]string{
		"username":         "Letters, digits and @/./+/-/_ only",
		"password_confirm": "The two password fields didn't match",
	}, errs)
}

func TestValidateStruct_FallsBackToJSONName(t *testing.T) {
	errs := ValidateStruct(jsonOnly{Quantity: 0})

	assert.Equal(t, "Must be at least 1", errs["quantity"])
}

type passwordForm struct {
	Password string `form:"password" validate:"required,maxbytes=72"`
}

func TestValidateStruct_MaxBytes(t *testing.T) {
	assert.Nil(t, ValidateStruct(passwordForm{Password: strings.Repeat("a", 72)}))

	// 40 runes, 80 bytes
	errs := ValidateStruct(passwordForm{Password: strings.Repeat("é", 40)})
	assert.Equal(t, "Must be at most 72 bytes", errs["password"])
}

func TestFormatValidationErrors_SortedByField(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"username": "This field is required",
		"password": "Minimum length is 8",
	})

	assert.Equal(t, "password: Minimum length is 8; username: This field is required", msg)
}
