// Package id generates unique identifiers for journal records.
//
// IDs are prefixed NanoIDs, e.g. "ent-V1StGXR8_Z5jdHi6B-myT". The prefix
// makes a raw ID self-describing in logs and store dumps; the NanoID part
// is URL-safe and shorter than a UUID at comparable entropy.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// PrefixEntry is the prefix for journal entry IDs.
const PrefixEntry = "ent"

// Generate creates a prefixed unique ID. It fails only when the system
// cannot supply secure random bytes.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics on failure. Reserve it for
// initialization paths where a dead entropy source should crash.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
