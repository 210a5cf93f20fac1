package utils

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSHA256 computes an HMAC-SHA256 digest over data keyed with key.
//
// A new HMAC instance is created on each call; the function is safe for
// concurrent use.
//
// Example usage:
//
//	peppered := utils.HMACSHA256([]byte(password), secret)
func HMACSHA256(data []byte, key []byte) []byte {
	hasher := hmac.New(sha256.New, key)
	hasher.Write(data)
	return hasher.Sum(nil)
}
