package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
)

type TokenGenerator interface {
	Generate() (string, error)
}

// RandomTokenGenerator produces opaque refresh tokens: byteLength random
// bytes, lowercase hex encoded.
type RandomTokenGenerator struct {
	byteLength int
	random     io.Reader
}

func NewRandomTokenGenerator(byteLength int) *RandomTokenGenerator {
	return &RandomTokenGenerator{byteLength: byteLength, random: rand.Reader}
}

func (g *RandomTokenGenerator) Generate() (string, error) {
	if g.byteLength <= 0 {
		return "", errors.New("refresh token length must be positive")
	}

	buf := make([]byte, g.byteLength)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
