package memory

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"hostel_pms/internal/domain"
)

//go:embed seed.json
var seedJSON []byte

// Seed decodes the literal starting state of the demo property.
func Seed() (domain.DBState, error) {
	var st domain.DBState
	if err := json.Unmarshal(seedJSON, &st); err != nil {
		return domain.DBState{}, fmt.Errorf("decode seed: %w", err)
	}
	return st, nil
}

// NewSeeded is New(Seed()) and panics on a broken seed, which can only
// happen at build time.
func NewSeeded() *Store {
	st, err := Seed()
	if err != nil {
		panic(err)
	}
	return New(st)
}
