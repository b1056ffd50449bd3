package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

const (
	Hash256Size       = 32
	MaxHashStringSize = Hash256Size * 2
	Hash160Size       = 20
)

type Hash [Hash256Size]byte

var HashZero = Hash{}

func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}

func Sha256Bytes(buf []byte) []byte {
	return calcHash(buf, sha256.New())
}

func Sha256Hash(buf []byte) (out Hash) {
	copy(out[:], Sha256Bytes(buf))
	return
}

func DoubleSha256Bytes(buf []byte) []byte {
	return Sha256Bytes(Sha256Bytes(buf))
}

func DoubleSha256Hash(buf []byte) (out Hash) {
	copy(out[:], DoubleSha256Bytes(buf))
	return
}

// String returns the hash in the usual display order, byte-reversed hex.
func (h *Hash) String() string {
	var rev [Hash256Size]byte
	for i, b := range h {
		rev[Hash256Size-1-i] = b
	}
	return hex.EncodeToString(rev[:])
}

func (h *Hash) GetCloneBytes() []byte {
	out := make([]byte, Hash256Size)
	copy(out, h[:])
	return out
}

func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

func (h *Hash) IsNull() bool {
	return *h == HashZero
}

// Cmp compares two hashes as big-endian byte strings, giving a total order.
func (h *Hash) Cmp(other *Hash) int {
	return bytes.Compare(h[:], other[:])
}

func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != Hash256Size {
		return errors.Errorf("invalid hash length of %v, want %v", len(newHash), Hash256Size)
	}
	copy(h[:], newHash)
	return nil
}

// HashFromString parses a display-order hex string. Short strings are padded
// on the most significant side. Returns nil on malformed hex.
func HashFromString(hexString string) *Hash {
	if len(hexString) > MaxHashStringSize {
		return nil
	}
	if len(hexString)%2 != 0 {
		hexString = "0" + hexString
	}
	raw, err := hex.DecodeString(hexString)
	if err != nil {
		return nil
	}
	var h Hash
	for i, b := range raw {
		h[len(raw)-1-i] = b
	}
	return &h
}
