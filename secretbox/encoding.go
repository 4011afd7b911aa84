package secretbox

import "encoding/base64"

// EncodeValue encodes a sealed blob to URL-safe base64 without padding,
// ready to be placed in a cookie value.
func EncodeValue(blob []byte) string {
	return base64.RawURLEncoding.EncodeToString(blob)
}

// DecodeValue decodes a cookie value produced by EncodeValue.
func DecodeValue(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
