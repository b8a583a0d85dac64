package core

import (
	"fmt"
	"strings"

	"github.com/binkhq/go-oidc-bearer/validator"
)

const scopeClaim = "scp"

// grantedScopes reads the scopes a token grants from its scp claim.
//
// A space separated string is split on whitespace and a JSON array keeps its
// string elements. A missing claim, or one of any other type, grants nothing.
func grantedScopes(claims validator.Claims) []string {
	switch scp := claims[scopeClaim].(type) {
	case string:
		return strings.Fields(scp)
	case []any:
		scopes := make([]string, 0, len(scp))
		for _, s := range scp {
			if str, ok := s.(string); ok {
				scopes = append(scopes, str)
			}
		}
		return scopes
	default:
		return nil
	}
}

// missingScopes returns the required scopes not in granted, in the order they
// were required. Duplicates are reported once.
func missingScopes(required, granted []string) []string {
	have := make(map[string]struct{}, len(granted))
	for _, s := range granted {
		have[s] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{}, len(required))
	for _, s := range required {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

func checkScopes(claims validator.Claims, required []string) error {
	granted := grantedScopes(claims)

	missing := missingScopes(required, granted)
	if len(missing) == 0 {
		return nil
	}

	return &AuthError{
		Reason: ReasonInsufficientScope,
		Message: fmt.Sprintf(
			"Not all required scopes are present. Expected %s, got %s",
			strings.Join(required, ","),
			strings.Join(granted, ", "),
		),
		Missing: missing,
		Granted: granted,
	}
}
