package graphio

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a stable content hash of a wire graph, suitable for cache
// keys. The hash covers nodes, edges, and all payloads in their serialized
// order; two structurally identical graphs hash identically.
func Hash(g Graph) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshal graph: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
