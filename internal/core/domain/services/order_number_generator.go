package services

import (
	"crypto/rand"
	"encoding/base32"
	"io"
	"time"
)

// OrderNumberGenerator produces numbers of the form ORD-YYYYMMDD-XXXXXXXX where the suffix is
// eight random base32 characters. Uniqueness is enforced by storage; callers retry on conflict.
type OrderNumberGenerator struct {
	random io.Reader
}

func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{random: rand.Reader}
}

// NewOrderNumberGeneratorWithSource uses r as the randomness source.
func NewOrderNumberGeneratorWithSource(r io.Reader) OrderNumberGenerator {
	return OrderNumberGenerator{random: r}
}

func (g OrderNumberGenerator) Generate(at time.Time) (string, error) {
	var suffix [5]byte
	if _, err := io.ReadFull(g.random, suffix[:]); err != nil {
		return "", err
	}
	return "ORD-" + at.UTC().Format("20060102") + "-" + base32.StdEncoding.EncodeToString(suffix[:]), nil
}
