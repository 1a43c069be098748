// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrFormat: the stored field is not "iv:ciphertext" or a part is not base64.
	ErrFormat = errors.New("malformed encrypted field")
	// ErrKeyLength: the key or the decoded IV has the wrong byte length.
	ErrKeyLength = errors.New("invalid key or iv length")
	// ErrDecryption: the cipher rejected the input (wrong key, corrupted data).
	ErrDecryption = errors.New("decryption failed")
)
