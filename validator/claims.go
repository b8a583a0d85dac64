package validator

// Claims holds every claim decoded from a validated token, keyed by claim
// name. Values keep their JSON shape: strings, float64 numbers, []any and
// map[string]any.
type Claims map[string]any

// String returns the claim name as a string, or false when it is absent or
// not a string.
func (c Claims) String(name string) (string, bool) {
	v, ok := c[name].(string)
	return v, ok
}

// Subject returns the sub claim, or an empty string.
func (c Claims) Subject() string {
	sub, _ := c.String("sub")
	return sub
}
