package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Username string `json:"username" validate:"required,max=5"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"pwd"`
	Phone    string `json:"phone_number" validate:"omitempty,phone"`
}

func TestCheckUsesJSONNames(t *testing.T) {
	got := Check(signup{Username: "toolong", Email: "nope", Password: "short", Phone: "+1234567890123456"})
	assert.Equal(t, map[string]string{
		"username":     "must be at most 5 characters long",
		"email":        "must be a valid email",
		"password":     "min length 8",
		"phone_number": "must be a valid phone number",
	}, got)

	assert.Nil(t, Check(signup{Username: "abc", Email: "a@x.com", Password: "12345678"}))
}

func TestCheckVar(t *testing.T) {
	assert.Nil(t, CheckVar("password", "longenough", "pwd"))
	assert.Equal(t, map[string]string{"password": "min length 8"}, CheckVar("password", "short", "pwd"))
}

func TestToDetailsJSONErrors(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	err := json.Unmarshal([]byte(`{"name":`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"name": 12}`), &v)
	assert.Equal(t, map[string]string{"name": "must be a string"}, ToDetails(err))

	assert.Nil(t, ToDetails(nil))
}
