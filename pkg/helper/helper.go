package helper

import (
	"runtime"
	"strings"
)

func GetFuncName() string {
	pc, _, _, _ := runtime.Caller(1)
	return runtime.FuncForPC(pc).Name()
}

// MaskSecret shortens a credential for logging: first and last four
// characters around an ellipsis. Short secrets are fully masked.
func MaskSecret(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
