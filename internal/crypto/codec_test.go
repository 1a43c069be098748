package crypto

import (
	"crypto/aes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestCodec(t *testing.T) *FieldCodec {
	t.Helper()
	c, err := NewFieldCodec(testKey)
	if err != nil {
		t.Fatalf("NewFieldCodec error: %v", err)
	}
	return c
}

func TestNewFieldCodec_RejectsBadKeys(t *testing.T) {
	cases := map[string]string{
		"short":   "0001020304",
		"long":    testKey + "00",
		"not hex": strings.Repeat("zz", 32),
		"empty":   "",
	}

	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewFieldCodec(key)
			if !errors.Is(err, ErrKeyLength) {
				t.Fatalf("err = %v, want ErrKeyLength", err)
			}
		})
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	inputs := []string{
		"",
		"hello",
		"exactly sixteen!",
		"Привет, мир",
		"emoji 🎙️ and tabs\tnew\nlines",
		"colons:inside:the:plaintext",
		strings.Repeat("long brainstorm ", 500),
	}

	for _, in := range inputs {
		field, err := c.Encrypt(in)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", in, err)
		}
		out, err := c.Decrypt(field)
		if err != nil {
			t.Fatalf("Decrypt error for %q: %v", in, err)
		}
		if out != in {
			t.Fatalf("round trip = %q, want %q", out, in)
		}
	}
}

func TestEncrypt_FieldFormat(t *testing.T) {
	c := newTestCodec(t)

	field, err := c.Encrypt("hello")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	parts := strings.Split(field, ":")
	if len(parts) != 2 {
		t.Fatalf("field %q has %d parts, want 2", field, len(parts))
	}
	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("iv is not base64: %v", err)
	}
	if len(iv) != aes.BlockSize {
		t.Fatalf("iv length = %d, want %d", len(iv), aes.BlockSize)
	}
	ct, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("ciphertext is not base64: %v", err)
	}
	if len(ct)%aes.BlockSize != 0 {
		t.Fatalf("ciphertext length %d is not a multiple of the block size", len(ct))
	}
}

func TestEncrypt_FreshIVPerCall(t *testing.T) {
	c := newTestCodec(t)

	a, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	ivA, _, _ := strings.Cut(a, ":")
	ivB, _, _ := strings.Cut(b, ":")
	if ivA == ivB {
		t.Fatalf("expected different IVs, got %q twice", ivA)
	}
	if a == b {
		t.Fatalf("expected different outputs for repeated encryption")
	}
}

func TestDecrypt_FormatErrors(t *testing.T) {
	c := newTestCodec(t)

	cases := []string{
		"not-a-valid-format",
		"",
		":",
		"abc:",
		":abc",
		"!!!:AAAAAAAAAAAAAAAAAAAAAA==",
		"AAAAAAAAAAAAAAAAAAAAAA==:%%%",
	}

	for _, field := range cases {
		out, err := c.Decrypt(field)
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("Decrypt(%q) err = %v, want ErrFormat", field, err)
		}
		if out != "" {
			t.Fatalf("Decrypt(%q) returned %q alongside an error", field, out)
		}
	}
}

func TestDecrypt_WrongIVLength(t *testing.T) {
	c := newTestCodec(t)

	field := base64.StdEncoding.EncodeToString([]byte("short-iv")) + ":" +
		base64.StdEncoding.EncodeToString(make([]byte, aes.BlockSize))

	_, err := c.Decrypt(field)
	if !errors.Is(err, ErrKeyLength) {
		t.Fatalf("err = %v, want ErrKeyLength", err)
	}
}

func TestDecrypt_BadCiphertextLength(t *testing.T) {
	c := newTestCodec(t)

	field := base64.StdEncoding.EncodeToString(make([]byte, aes.BlockSize)) + ":" +
		base64.StdEncoding.EncodeToString([]byte("odd"))

	_, err := c.Decrypt(field)
	if !errors.Is(err, ErrDecryption) {
		t.Fatalf("err = %v, want ErrDecryption", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	c := newTestCodec(t)
	other, err := NewFieldCodec(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("NewFieldCodec error: %v", err)
	}

	field, err := c.Encrypt("the quick brown fox")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	out, err := other.Decrypt(field)
	if err == nil && out == "the quick brown fox" {
		t.Fatalf("decrypting with another key returned the plaintext")
	}
	if err != nil && !errors.Is(err, ErrDecryption) {
		t.Fatalf("err = %v, want ErrDecryption", err)
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	c := newTestCodec(t)
	const plaintext = "do not touch this ciphertext"

	field, err := c.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	iv, ct, _ := strings.Cut(field, ":")
	// The last quantum may carry unused low bits, so only full quanta are flipped.
	for i := 0; i < len(ct)-4; i++ {
		flipped := byte('A')
		if ct[i] == 'A' {
			flipped = 'B'
		}
		tampered := iv + ":" + ct[:i] + string(flipped) + ct[i+1:]

		out, err := c.Decrypt(tampered)
		if err == nil && out == plaintext {
			t.Fatalf("tampering position %d went undetected", i)
		}
		if err != nil && !errors.Is(err, ErrDecryption) && !errors.Is(err, ErrFormat) {
			t.Fatalf("position %d: unexpected error %v", i, err)
		}
	}
}

func TestFieldCodec_ImplementsCodec(t *testing.T) {
	var _ Codec = newTestCodec(t)
}
