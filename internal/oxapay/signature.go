package oxapay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

type SignatureMode int

const (
	// SignatureDisabled accepts every payload. Chosen only when no webhook
	// secret is configured; callers must warn loudly at startup.
	SignatureDisabled SignatureMode = iota
	SignatureEnforced
)

// Verifier checks that a webhook payload was signed by the processor.
type Verifier struct {
	mode   SignatureMode
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return &Verifier{mode: SignatureDisabled}
	}
	return &Verifier{mode: SignatureEnforced, secret: []byte(secret)}
}

func (v *Verifier) Mode() SignatureMode {
	return v.mode
}

// Verify compares the hex HMAC-SHA256 of the raw payload against the
// provided signature in constant time.
func (v *Verifier) Verify(payload []byte, signature string) bool {
	if v.mode == SignatureDisabled {
		return true
	}

	decoded, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(signature)))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decoded)
}
