// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Jordan", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("name", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "name", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_EmailShape checks the loose contact-form email rule.
*/
func TestValidator_EmailShape(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "sales@dealer.com", true},
		{"subdomain", "gm@north.dealer.co", true},
		{"no_tld", "sales@dealer", false},
		{"inner_space", "sa les@dealer.com", false},
		{"double_at", "a@b@c.com", false},
		{"empty_left_to_required", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.EmailShape("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Slug checks deck slug format.
*/
func TestValidator_Slug(t *testing.T) {
	assert.False(t, (&validate.Validator{}).Slug("slug", "is-this-you").HasErrors())
	assert.True(t, (&validate.Validator{}).Slug("slug", "Is This You").HasErrors())
	assert.True(t, (&validate.Validator{}).Slug("slug", "-edge-").HasErrors())
}

func TestValidator_OneOf(t *testing.T) {
	assert.False(t, (&validate.Validator{}).OneOf("command", "next", "open", "next").HasErrors())

	ae := apperr.As((&validate.Validator{}).OneOf("command", "jump", "open", "next").Err())
	require.NotNil(t, ae)
	assert.Equal(t, "Must be one of: open, next", ae.Details[0].Message)
}

/*
TestValidator_Bounds checks the inclusive length and range rules.
*/
func TestValidator_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		validate func(v *validate.Validator)
		hasError bool
	}{
		{"range_lower_edge", func(v *validate.Validator) { v.Range("photos", 0, 0, 4) }, false},
		{"range_upper_edge", func(v *validate.Validator) { v.Range("photos", 4, 0, 4) }, false},
		{"range_above", func(v *validate.Validator) { v.Range("photos", 5, 0, 4) }, true},
		{"min_len_counts_runes", func(v *validate.Validator) { v.MinLen("password", "ñññ", 3) }, false},
		{"min_len_short", func(v *validate.Validator) { v.MinLen("password", "abc", 4) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.validate(v)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").
		MaxLen("message", "too long", 3).
		EmailShape("email", "not-an-email").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
