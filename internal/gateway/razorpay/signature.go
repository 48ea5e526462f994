// internal/gateway/razorpay/signature.go
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a payment callback signature. The gateway signs
// "<orderID>|<paymentID>" with the key secret; the hex digest must match
// byte for byte.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return expected == signature
}
