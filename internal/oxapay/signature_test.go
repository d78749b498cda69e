package oxapay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifierEnforced(t *testing.T) {
	payload := []byte(`{"status":"completed","track_id":"INV1"}`)
	secret := "top-secret"
	v := NewVerifier(secret)

	if v.Mode() != SignatureEnforced {
		t.Fatalf("expected enforced mode with a secret configured")
	}
	if !v.Verify(payload, signPayload(payload, secret)) {
		t.Fatalf("expected valid signature to verify")
	}
	if v.Verify(payload, signPayload(payload, "wrong-secret")) {
		t.Fatalf("expected signature under wrong secret to fail")
	}
	if v.Verify([]byte(`{"status":"completed","track_id":"INV2"}`), signPayload(payload, secret)) {
		t.Fatalf("expected tampered payload to fail")
	}
	if v.Verify(payload, "deadbeef") {
		t.Fatalf("expected garbage signature to fail")
	}
	if v.Verify(payload, "not-hex!") {
		t.Fatalf("expected non-hex signature to fail")
	}
}

func TestVerifierUppercaseSignature(t *testing.T) {
	payload := []byte(`{"status":"completed"}`)
	secret := "s3cret"
	v := NewVerifier(secret)

	sig := signPayload(payload, secret)
	upper := make([]byte, len(sig))
	for i := range sig {
		c := sig[i]
		if c >= 'a' && c <= 'f' {
			c = c - 'a' + 'A'
		}
		upper[i] = c
	}
	if !v.Verify(payload, string(upper)) {
		t.Fatalf("expected uppercase hex signature to verify")
	}
}

func TestVerifierDisabled(t *testing.T) {
	v := NewVerifier("")
	if v.Mode() != SignatureDisabled {
		t.Fatalf("expected disabled mode without a secret")
	}
	if !v.Verify([]byte("anything"), "any-signature") {
		t.Fatalf("disabled verifier must accept every payload")
	}

	v = NewVerifier("   ")
	if v.Mode() != SignatureDisabled {
		t.Fatalf("expected whitespace-only secret to disable verification")
	}
}
