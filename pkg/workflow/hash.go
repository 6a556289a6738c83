package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ConfigFingerprint computes a stable fingerprint of a node configuration
// map. Two nodes with the same type tag and the same fingerprint are
// considered duplicates by the redundancy-removal pass.
//
// The fingerprint is computed from compact JSON; encoding/json sorts map
// keys, so the result is independent of key order at every nesting level.
// Configuration values that cannot be serialized (channels, funcs, cyclic
// references) make the fingerprint - and therefore the optimizer run - fail;
// that error is propagated to the caller rather than swallowed.
func ConfigFingerprint(config map[string]any) (string, error) {
	if len(config) == 0 {
		return "", nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("fingerprint config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// NodeKey computes the duplicate-detection key for a node: its type tag
// combined with its configuration fingerprint.
func NodeKey(n *Node) (string, error) {
	fp, err := ConfigFingerprint(n.Data.Config)
	if err != nil {
		return "", fmt.Errorf("node %s: %w", n.ID, err)
	}
	return n.Type + "\x00" + fp, nil
}
