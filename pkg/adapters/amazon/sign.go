package amazon

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AWS Signature Version 4 for the ProductAdvertisingAPI service. The PA-API
// accepts exactly these signed headers: content-encoding, host, x-amz-date,
// x-amz-target.

const (
	signingService   = "ProductAdvertisingAPI"
	signedHeaderList = "content-encoding;host;x-amz-date;x-amz-target"
)

type signingInput struct {
	accessKey string
	secretKey string
	region    string
	host      string
	path      string
	target    string
	now       time.Time
}

func signRequest(req *http.Request, payload []byte, in signingInput) {
	amzDate := in.now.Format("20060102T150405Z")
	dateStamp := in.now.Format("20060102")

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("X-Amz-Target", in.target)
	req.Host = in.host

	canonicalHeaders := strings.Join([]string{
		"content-encoding:amz-1.0",
		"host:" + in.host,
		"x-amz-date:" + amzDate,
		"x-amz-target:" + in.target,
	}, "\n") + "\n"

	canonicalRequest := strings.Join([]string{
		http.MethodPost,
		in.path,
		"", // no query string
		canonicalHeaders,
		signedHeaderList,
		hexSHA256(payload),
	}, "\n")

	credentialScope := strings.Join([]string{dateStamp, in.region, signingService, "aws4_request"}, "/")
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		credentialScope,
		hexSHA256([]byte(canonicalRequest)),
	}, "\n")

	signingKey := hmacSHA256(
		hmacSHA256(
			hmacSHA256(
				hmacSHA256([]byte("AWS4"+in.secretKey), dateStamp),
				in.region),
			signingService),
		"aws4_request")
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	req.Header.Set("Authorization", fmt.Sprintf(
		"AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		in.accessKey, credentialScope, signedHeaderList, signature))
}

func hexSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
