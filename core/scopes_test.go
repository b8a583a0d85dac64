package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/binkhq/go-oidc-bearer/validator"
)

func TestGrantedScopes(t *testing.T) {
	testCases := []struct {
		name   string
		claims validator.Claims
		want   []string
	}{
		{name: "space separated", claims: validator.Claims{"scp": "a b  c"}, want: []string{"a", "b", "c"}},
		{name: "tab separated", claims: validator.Claims{"scp": "a\tb"}, want: []string{"a", "b"}},
		{name: "empty string", claims: validator.Claims{"scp": ""}, want: []string{}},
		{name: "array keeps strings only", claims: validator.Claims{"scp": []any{"a", 1.0, "b"}}, want: []string{"a", "b"}},
		{name: "missing", claims: validator.Claims{}, want: nil},
		{name: "number", claims: validator.Claims{"scp": 3.0}, want: nil},
		{name: "object", claims: validator.Claims{"scp": map[string]any{"a": true}}, want: nil},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, grantedScopes(testCase.claims))
		})
	}
}

func TestMissingScopes(t *testing.T) {
	assert.Nil(t, missingScopes([]string{"a"}, []string{"a", "b"}))
	assert.Equal(t, []string{"d"}, missingScopes([]string{"a", "d"}, []string{"a", "b", "c"}))
	assert.Equal(t, []string{"x", "y"}, missingScopes([]string{"x", "y", "x"}, nil))
}
