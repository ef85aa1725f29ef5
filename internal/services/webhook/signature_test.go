package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerify(t *testing.T) {
	payload := []byte(`{"event":"order.delivered","data":{"order_id":1}}`)
	secret := "whsec_test_secret"

	sig := Sign(payload, secret)

	assert.Len(t, sig, 64) // hex-encoded SHA-256
	assert.True(t, Verify(payload, sig, secret))
}

func TestVerify_Rejects(t *testing.T) {
	payload := []byte(`{"event":"order.created"}`)
	secret := "whsec_test_secret"
	sig := Sign(payload, secret)

	tests := []struct {
		name      string
		payload   []byte
		signature string
		secret    string
	}{
		{"tampered payload", []byte(`{"event":"order.cancelled"}`), sig, secret},
		{"wrong secret", payload, sig, "whsec_other"},
		{"truncated signature", payload, sig[:32], secret},
		{"non-hex signature", payload, "not-hex!", secret},
		{"empty signature", payload, "", secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify(tt.payload, tt.signature, tt.secret))
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	payload := []byte("same bytes")
	assert.Equal(t, Sign(payload, "s"), Sign(payload, "s"))
	assert.NotEqual(t, Sign(payload, "s"), Sign(payload, "t"))
}
