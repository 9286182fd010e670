package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for stored records.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return value.String(), nil
}

// PrefixedGenerator prepends a fixed prefix, e.g. "fx_", to another generator's IDs.
type PrefixedGenerator struct {
	Prefix string
	Next   Generator
}

func (g PrefixedGenerator) NewID() (string, error) {
	next := g.Next
	if next == nil {
		next = NewUUIDGenerator()
	}
	value, err := next.NewID()
	if err != nil {
		return "", err
	}
	return g.Prefix + value, nil
}
