// Package samples ships a curated set of vendor quotations for demo runs and
// a seeded synthetic generator for load and benchmark scenarios.
//
// The curated set spans the three brand tiers, three currencies, and the full
// risk spectrum, so a single demo pass exercises every classification branch
// the analysis pipeline has.
package samples

import (
	_ "embed"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

//go:embed vendors.json
var vendorsJSON []byte

var fixtureJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// fixtureFile matches the on-disk layout of the embedded vendor set.
type fixtureFile struct {
	Vendors []schemas.VendorInput `json:"vendors"`
}

// Vendors returns the curated sample vendor set. Each call decodes a fresh
// copy, so callers may mutate the result freely.
func Vendors() ([]schemas.VendorInput, error) {
	var file fixtureFile
	if err := fixtureJSON.Unmarshal(vendorsJSON, &file); err != nil {
		return nil, fmt.Errorf("failed to decode embedded vendor samples: %w", err)
	}
	return file.Vendors, nil
}
