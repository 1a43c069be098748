// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec encrypts single text fields for storage at rest.
//
// Encrypt returns "<iv_base64>:<ciphertext_base64>" with a fresh random IV on
// every call. Decrypt reverses it and reports failures with [ErrFormat],
// [ErrKeyLength] or [ErrDecryption] so callers can degrade per field.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(field string) (string, error)
}
