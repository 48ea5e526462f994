package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAccepts(t *testing.T) {
	sig := sign("secret", "order_abc", "pay_xyz")
	assert.True(t, VerifySignature("secret", "order_abc", "pay_xyz", sig))
}

func TestVerifySignatureRejectsTampered(t *testing.T) {
	sig := sign("secret", "order_abc", "pay_xyz")

	assert.False(t, VerifySignature("secret", "order_abc", "pay_other", sig))
	assert.False(t, VerifySignature("secret", "order_other", "pay_xyz", sig))
	assert.False(t, VerifySignature("other-secret", "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature("secret", "order_abc", "pay_xyz", ""))
}

func TestVerifySignatureIsCaseExact(t *testing.T) {
	sig := sign("secret", "order_abc", "pay_xyz")
	assert.False(t, VerifySignature("secret", "order_abc", "pay_xyz", strings.ToUpper(sig)))
}
