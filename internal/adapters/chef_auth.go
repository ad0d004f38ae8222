package adapters

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	gossh "golang.org/x/crypto/ssh"
)

const (
	chefSignVersion   = "algorithm=sha1;version=1.0"
	chefClientVersion = "18.0.0"
	chefAPIVersion    = "1"
	chefSigChunkSize  = 60
)

var repeatedSlashes = regexp.MustCompile(`/+`)

// chefSigner signs requests with the Chef authentication protocol 1.0.
type chefSigner struct {
	ClientName string
	Key        *rsa.PrivateKey
	Clock      func() time.Time
}

// loadClientKey reads a PEM encoded RSA client key. PKCS#1, PKCS#8 and
// OpenSSH encodings are accepted.
func loadClientKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read client key").
			WithCause(err)
	}
	return parseClientKey(data)
}

func parseClientKey(data []byte) (*rsa.PrivateKey, error) {
	raw, err := gossh.ParseRawPrivateKey(data)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse client key").
			WithCause(err)
	}
	key, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("client key must be RSA, got %T", raw))
	}
	return key, nil
}

func (s chefSigner) Sign(req *http.Request, body []byte) error {
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	timestamp := now().UTC().Format("2006-01-02T15:04:05Z")
	contentHash := sha1Base64(body)
	canonical := canonicalRequest(req.Method, req.URL.Path, contentHash, timestamp, s.ClientName)
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.Key, crypto.Hash(0), []byte(canonical))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to sign chef request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Chef-Version", chefClientVersion)
	req.Header.Set("X-Ops-Server-API-Version", chefAPIVersion)
	req.Header.Set("X-Ops-Sign", chefSignVersion)
	req.Header.Set("X-Ops-UserId", s.ClientName)
	req.Header.Set("X-Ops-Timestamp", timestamp)
	req.Header.Set("X-Ops-Content-Hash", contentHash)
	for i, chunk := range splitChunks(base64.StdEncoding.EncodeToString(signature), chefSigChunkSize) {
		req.Header.Set(fmt.Sprintf("X-Ops-Authorization-%d", i+1), chunk)
	}
	return nil
}

func canonicalRequest(method string, path string, contentHash string, timestamp string, userID string) string {
	return strings.Join([]string{
		"Method:" + strings.ToUpper(method),
		"Hashed Path:" + sha1Base64([]byte(canonicalPath(path))),
		"X-Ops-Content-Hash:" + contentHash,
		"X-Ops-Timestamp:" + timestamp,
		"X-Ops-UserId:" + userID,
	}, "\n")
}

// canonicalPath squeezes repeated slashes and drops a trailing slash
// except for the root path.
func canonicalPath(path string) string {
	squeezed := repeatedSlashes.ReplaceAllString(path, "/")
	if len(squeezed) > 1 {
		squeezed = strings.TrimSuffix(squeezed, "/")
	}
	if squeezed == "" {
		return "/"
	}
	return squeezed
}

func sha1Base64(data []byte) string {
	sum := sha1.Sum(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func splitChunks(value string, size int) []string {
	var chunks []string
	for len(value) > size {
		chunks = append(chunks, value[:size])
		value = value[size:]
	}
	if value != "" {
		chunks = append(chunks, value)
	}
	return chunks
}
