// Package identity resolves the canonical identity used to join an
// asset across snapshots: the chain address when present, else the
// symbol. Resolution happens once per record at the ingestion
// boundary; downstream packages only ever compare resolved ids.
package identity

import (
	"strings"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

const pubkeyLen = 32

// Resolve returns the canonical identity for an address/symbol pair.
// A nil or empty address falls back to the symbol. The second return
// reports whether the id is address-based, so callers can flag assets
// whose fallback basis changed across a range.
func Resolve(address *string, symbol string) (string, bool) {
	if address != nil && *address != "" {
		return *address, true
	}
	return symbol, false
}

// ResolveRecordID is the record-level convenience: canonical id from
// an address pointer and symbol, trimming surrounding whitespace.
func ResolveRecordID(address *string, symbol string) string {
	id, _ := Resolve(address, strings.TrimSpace(symbol))
	return strings.TrimSpace(id)
}

// IsValidAddress reports whether s decodes as a 32-byte base58
// public key. Malformed addresses are rejected at the ingestion
// boundary rather than inside the statistics engine.
func IsValidAddress(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == pubkeyLen
}

// IsOffCurve reports whether a decoded address is not a valid ed25519
// curve point. Program-derived (launchpad pool style) addresses are
// intentionally off-curve, so this distinguishes them from wallet
// keys. Returns false for addresses that fail to decode.
func IsOffCurve(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != pubkeyLen {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err != nil
}
