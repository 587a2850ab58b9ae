package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for request correlation and seeded records.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs, optionally prefixed ("fx-<uuid>").
type UUIDGenerator struct {
	prefix string
}

func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	if g == nil || g.prefix == "" {
		return v.String(), nil
	}
	return g.prefix + "-" + v.String(), nil
}
