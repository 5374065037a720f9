package graph

import (
	"encoding/json"

	"github.com/minio/highwayhash"
)

// revisionKey is a fixed 32-byte key for the highwayhash instance used to
// tag the pending-routing file with the graph state it was computed
// against, mirroring viant-linager/inspector/graph.Hash.
var revisionKey = []byte("rpg-pending-routing-revision-k1!")

// Revision returns a stable hash of the document's entities, hierarchy and
// edges (no other Document field is hashed), used as
// the graph_revision tag that pending-routing submissions must match.
func (d *Document) Revision() (string, error) {
	payload, err := json.Marshal(struct {
		Entities  map[string]*Entity        `json:"entities"`
		Hierarchy map[string]*HierarchyNode `json:"hierarchy"`
		Edges     []*Edge                   `json:"edges"`
	}{d.Entities, d.Hierarchy, d.Edges})
	if err != nil {
		return "", err
	}
	h, err := highwayhash.New64(revisionKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(payload); err != nil {
		return "", err
	}
	return encodeRevision(h.Sum64()), nil
}

func encodeRevision(sum uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[sum&0xf]
		sum >>= 4
	}
	return string(buf)
}
