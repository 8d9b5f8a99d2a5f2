// Package registry implements the reference registry (C3): the visited-set
// deduplication ledger and the ordered invalid-reference ledger.
package registry

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// triple is the (host, port, selector) key the visited set dedups on.
type triple struct {
	host     string
	port     uint16
	selector string
}

func (t triple) hash() uint64 {
	// host, port and selector are variable-length and concatenated without
	// a separator would let ("a", 11, "c") collide in the source text with
	// ("a1", 1, "c"); a NUL byte separates the fields. The menu parser does
	// not reject NUL inside a host or selector, so distinct triples can
	// still hash alike; Seen compares bucket entries by exact triple
	// equality, so such a collision never makes an unvisited triple seen.
	var buf []byte
	buf = append(buf, t.host...)
	buf = append(buf, 0)
	buf = strconv.AppendUint(buf, uint64(t.port), 10)
	buf = append(buf, 0)
	buf = append(buf, t.selector...)
	return xxhash.Sum64(buf)
}

// InvalidRef is one entry in the invalid-reference ledger.
type InvalidRef struct {
	Display string
	Kind    string
}

// Registry tracks every (host, port, selector) triple the controller has
// attempted, plus the ordered ledger of references whose fetch or parse
// failed. It is single-threaded: spec.md §5 mandates strictly sequential
// traversal, so no locking is needed.
type Registry struct {
	buckets     map[uint64][]triple
	invalidRefs []InvalidRef
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{buckets: make(map[uint64][]triple)}
}

// Seen reports whether (host, port, selector) has already been visited.
func (r *Registry) Seen(host string, port uint16, selector string) bool {
	t := triple{host, port, selector}
	for _, candidate := range r.buckets[t.hash()] {
		if candidate == t {
			return true
		}
	}
	return false
}

// MarkVisited records (host, port, selector) as visited. Callers must mark
// a reference visited before initiating its request, so that cycles and
// diamonds are bounded even when the request itself fails.
func (r *Registry) MarkVisited(host string, port uint16, selector string) {
	t := triple{host, port, selector}
	h := t.hash()
	r.buckets[h] = append(r.buckets[h], t)
}

// RecordInvalid appends an entry to the invalid-reference ledger.
func (r *Registry) RecordInvalid(display, kind string) {
	r.invalidRefs = append(r.invalidRefs, InvalidRef{Display: display, Kind: kind})
}

// InvalidRefs returns the ledger in insertion order.
func (r *Registry) InvalidRefs() []InvalidRef {
	return r.invalidRefs
}
