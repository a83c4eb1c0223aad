package auth

import "strings"

// ParseBearer extracts the token from an Authorization header value. The value
// must be exactly two space separated parts, the first being "Bearer".
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrAuthMissing
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrAuthMalformed
	}
	return parts[1], nil
}
