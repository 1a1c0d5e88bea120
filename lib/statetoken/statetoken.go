// Package statetoken packs flat table-state fields into compact, tamper-proof
// tokens for persistence outside the URL bar (hidden form fields, cookies,
// external stores).
//
// Tokens come in two modes:
//   - Signed (default): msgpack + base64 with an HMAC signature - the fields
//     are visible but cannot be altered.
//   - Opaque: AES-256-GCM encrypted - the fields are hidden entirely.
//
// Decode failures are reported as sentinel errors so callers can fall back
// to default state instead of surfacing them.
package statetoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors for token decoding.
var (
	ErrInvalidFormat    = errors.New("statetoken: invalid token format")
	ErrSignatureInvalid = errors.New("statetoken: signature verification failed")
	ErrDecryptFailed    = errors.New("statetoken: decryption failed")
)

// Codec encodes and decodes state tokens with a fixed key.
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// New creates a codec with the given key. Keys shorter than 32 bytes are
// stretched to 32 via SHA-256 so any shared secret works for AES-256.
func New(key []byte) (*Codec, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode packs the fields into a token. With opaque true the token is
// encrypted; otherwise it is signed but readable.
func (c *Codec) Encode(fields map[string]any, opaque bool) (string, error) {
	packed, err := msgpack.Marshal(fields)
	if err != nil {
		return "", err
	}
	if opaque {
		return c.encrypt(packed)
	}
	return c.sign(packed), nil
}

// Decode unpacks a token produced by Encode with the same mode. Tampered or
// malformed tokens return one of the sentinel errors.
func (c *Codec) Decode(token string, opaque bool) (map[string]any, error) {
	var packed []byte
	var err error
	if opaque {
		packed, err = c.decrypt(token)
	} else {
		packed, err = c.verify(token)
	}
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := msgpack.Unmarshal(packed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return fields, nil
}

// sign produces base64(payload).base64(hmac[:16]).
func (c *Codec) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig
}

func (c *Codec) verify(token string) ([]byte, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	expected := mac.Sum(nil)[:16]
	if !hmac.Equal(sig, expected) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (c *Codec) encrypt(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ciphertext := c.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

func (c *Codec) decrypt(token string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(ciphertext) < c.gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidFormat)
	}

	nonce := ciphertext[:c.gcm.NonceSize()]
	plain, err := c.gcm.Open(nil, nonce, ciphertext[c.gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
