// Package cryptoframe wraps a msgplus Value in an AES-CBC + PKCS7 envelope:
// encode to wire bytes, pad, encrypt; decrypt, unpad, decode.
package cryptoframe

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/vgorin/cryptogo/pad"

	"msgplus"
)

// ErrEmptyCiphertext is returned by Open when given a zero-length input.
var ErrEmptyCiphertext = errors.New("cryptoframe: ciphertext is empty")

// Seal encodes v and returns it AES-CBC encrypted under key/iv, PKCS7
// padded to the block size first.
func Seal(v msgplus.Value, key, iv []byte) ([]byte, error) {
	wire, err := msgplus.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cryptoframe: encode: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptoframe: new cipher: %w", err)
	}
	padded := pad.PKCS7Pad(wire, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// Open decrypts ciphertext with key/iv, removes PKCS7 padding, and decodes
// the result as a Value.
func Open(ciphertext, key, iv []byte) (msgplus.Value, error) {
	if len(ciphertext) == 0 {
		return msgplus.Value{}, ErrEmptyCiphertext
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return msgplus.Value{}, fmt.Errorf("cryptoframe: ciphertext length %d is not a multiple of the AES block size", len(ciphertext))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return msgplus.Value{}, fmt.Errorf("cryptoframe: new cipher: %w", err)
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	wire, err := pad.PKCS7Unpad(padded)
	if err != nil {
		return msgplus.Value{}, fmt.Errorf("cryptoframe: remove padding: %w", err)
	}
	v, err := msgplus.Unmarshal(wire)
	if err != nil {
		return msgplus.Value{}, fmt.Errorf("cryptoframe: decode: %w", err)
	}
	return v, nil
}
