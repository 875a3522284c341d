package helpers

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

var ErrDecrypt = errors.New("decryption failed")

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, keySize)
	if err != nil {
		return nil, err
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// Seal encrypts plain with a key derived from passphrase.
// Layout: salt | nonce | secretbox(plain).
func Seal(passphrase string, plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, key), nil
}

// Open reverses Seal.
func Open(passphrase string, sealed []byte) ([]byte, error) {
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}
	salt := sealed[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	plain, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrDecrypt
	}
	return plain, nil
}
