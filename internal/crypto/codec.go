// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements field-level encryption of conversation and note
// text at rest.
//
// Fields are encrypted with AES-256-CBC and PKCS#7 padding under one static
// 32-byte key that is loaded once from configuration. The stored form is
// "<iv_base64>:<ciphertext_base64>" using the standard base64 alphabet.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	keySize   = 32
	separator = ":"
)

// FieldCodec is the AES-256-CBC implementation of [Codec].
// It holds only the immutable cipher block and is safe for concurrent use.
type FieldCodec struct {
	block cipher.Block
	rand  io.Reader
}

// NewFieldCodec builds a codec from a hex-encoded key.
//
// Returns:
//
//	*FieldCodec - a codec using crypto/rand for IVs
//	error       - [ErrKeyLength] when hexKey is not valid hex or does not
//	              decode to exactly 32 bytes
//
// Example usage:
//
//	codec, err := crypto.NewFieldCodec(cfg.App.EncryptionKey)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("invalid encryption key")
//	}
//	field, err := codec.Encrypt("Launch plan")
//	// field looks like "q2n1...==:8HcW...=="
func NewFieldCodec(hexKey string) (*FieldCodec, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: key is not valid hex: %w", ErrKeyLength, err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: key has %d bytes, want %d", ErrKeyLength, len(key), keySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyLength, err)
	}

	return &FieldCodec{block: block, rand: rand.Reader}, nil
}

// Encrypt implements [Codec].
func (c *FieldCodec) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", fmt.Errorf("error generating iv: %w", err)
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(iv) + separator +
		base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt implements [Codec]. It splits the field on the first ':' only.
//
// Returns:
//   - [ErrFormat] if the separator is missing or either part is not base64;
//   - [ErrKeyLength] if the IV is not one AES block long;
//   - [ErrDecryption] if the ciphertext length, the padding or the UTF-8
//     check is wrong. A wrong key usually ends here.
func (c *FieldCodec) Decrypt(field string) (string, error) {
	ivPart, ctPart, found := strings.Cut(field, separator)
	if !found || ivPart == "" || ctPart == "" {
		return "", ErrFormat
	}

	iv, err := base64.StdEncoding.DecodeString(ivPart)
	if err != nil {
		return "", fmt.Errorf("%w: iv: %w", ErrFormat, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(ctPart)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %w", ErrFormat, err)
	}

	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: iv has %d bytes, want %d", ErrKeyLength, len(iv), aes.BlockSize)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrDecryption)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plain, ciphertext)

	plain, err = unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: plaintext is not valid utf-8", ErrDecryption)
	}

	return string(plain), nil
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
		}
	}

	return data[:len(data)-n], nil
}
