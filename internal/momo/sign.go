package momo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// The gateway recomputes signatures over a fixed key order. The signing
// string is built by explicit iteration over ordered pairs, never from a
// map, so the order is bit-for-bit stable.

// callbackSignatureKeys is the exact key order for callback verification
var callbackSignatureKeys = []string{
	"amount",
	"extraData",
	"message",
	"orderId",
	"orderInfo",
	"orderType",
	"partnerCode",
	"payType",
	"requestId",
	"responseTime",
	"resultCode",
	"transId",
}

// signingString joins ordered pairs as key=value&key=value
func signingString(pairs [][2]string) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(p[1])
	}
	return b.String()
}

// sign computes HMAC-SHA256 over the ordered pairs, hex encoded lowercase
func sign(secretKey string, pairs [][2]string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(signingString(pairs)))
	return hex.EncodeToString(mac.Sum(nil))
}

// requestSigningPairs builds the ordered pair set for a create request
func requestSigningPairs(accessKey string, req *CreateRequest) [][2]string {
	return [][2]string{
		{"accessKey", accessKey},
		{"amount", formatAmount(req.Amount)},
		{"extraData", req.ExtraData},
		{"ipnUrl", req.IpnURL},
		{"orderId", req.OrderID},
		{"orderInfo", req.OrderInfo},
		{"partnerCode", req.PartnerCode},
		{"redirectUrl", req.RedirectURL},
		{"requestId", req.RequestID},
		{"requestType", req.RequestType},
	}
}

// callbackSigningPairs builds the ordered pair set for callback verification.
// Missing fields participate as empty values.
func callbackSigningPairs(accessKey string, fields map[string]string) [][2]string {
	pairs := make([][2]string, 0, len(callbackSignatureKeys)+1)
	pairs = append(pairs, [2]string{"accessKey", accessKey})
	for _, key := range callbackSignatureKeys {
		pairs = append(pairs, [2]string{key, fields[key]})
	}
	return pairs
}

// VerifyCallback recomputes the callback signature and compares it with the
// supplied one in constant time
func (c *Client) VerifyCallback(fields map[string]string) bool {
	supplied, ok := fields["signature"]
	if !ok || supplied == "" {
		return false
	}
	expected := sign(c.secretKey, callbackSigningPairs(c.accessKey, fields))
	return hmac.Equal([]byte(expected), []byte(supplied))
}
