package utils

import (
	rndm "math/rand"
)

// Token bounds for booking reference numbers.
const (
	TokenMin = 1000
	TokenMax = 9999
)

// GenerateToken returns a uniform random 4-digit booking token in
// [TokenMin, TokenMax]. Tokens are a human-facing reference, not a lookup
// key, so no uniqueness is enforced.
func GenerateToken() int {
	return TokenMin + rndm.Intn(TokenMax-TokenMin+1)
}
