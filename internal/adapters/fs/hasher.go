package fs

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of file contents and emitted rows.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Digest returns the XXHash of content as 16 hex digits.
func (h *Hasher) Digest(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// ComputeOutputHash computes a single hash over the rows, sorted by ID so the
// result does not depend on discovery order.
func (h *Hasher) ComputeOutputHash(rows []domain.Row) string {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b domain.Row) int {
		return cmp.Compare(a.ID, b.ID)
	})

	hasher := xxhash.New()
	for _, row := range sorted {
		_, _ = hasher.WriteString(row.ID)
		_, _ = hasher.Write([]byte{0}) // Separator
		_, _ = hasher.WriteString(row.Source)
		_, _ = hasher.Write([]byte{0})

		for _, alias := range slices.Sorted(maps.Keys(row.Deps)) {
			_, _ = hasher.WriteString(alias)
			_, _ = hasher.Write([]byte{'='})
			_, _ = hasher.WriteString(row.Deps[alias])
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
