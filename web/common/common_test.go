package common

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly_JSON(t *testing.T) {
	var body struct {
		Date DateOnly `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-12-27"}`), &body))
	assert.Equal(t, 27, body.Date.Day())

	loc := time.FixedZone("ICT", 7*60*60)
	assert.Equal(t, time.Date(2025, 12, 27, 0, 0, 0, 0, loc), body.Date.In(loc))

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-12-27"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"27/12/2025"}`), &body))
}

type grantBody struct {
	Date    string `json:"date" binding:"required"`
	GrantOT *bool  `json:"grantOT"`
	Status  string `json:"status" binding:"omitempty,oneof=complete incomplete"`
}

func TestFormatBindingError(t *testing.T) {
	assert.Equal(t, "", FormatBindingError(nil))
	assert.Equal(t, "Request body is empty", FormatBindingError(io.EOF))
	assert.Equal(t, "boom", FormatBindingError(errors.New("boom")))

	err := binding.Validator.ValidateStruct(&grantBody{Status: "late"})
	require.Error(t, err)
	msg := FormatBindingError(err)
	assert.Contains(t, msg, "Field 'date' is required")
	assert.Contains(t, msg, "Field 'status' must be one of [complete incomplete]")

	var target struct {
		Limit int `json:"limit"`
	}
	err = json.Unmarshal([]byte(`{"limit":"ten"}`), &target)
	assert.Equal(t, "Field 'limit' should be of type int", FormatBindingError(err))
}
