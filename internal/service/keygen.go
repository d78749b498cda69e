package service

import (
	"strings"

	"github.com/google/uuid"
)

// newActivationCode derives a 32-character uppercase code from a random
// 128-bit uuid: easy to transcribe in chat, infeasible to guess.
func newActivationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}
