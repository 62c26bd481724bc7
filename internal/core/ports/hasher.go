package ports

import "go.trai.ch/incr/internal/core/domain"

// Hasher computes non-cryptographic digests for reporting.
// Cache validation never uses it: fingerprints are compared byte for byte.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest returns a short hex digest of content.
	Digest(content string) string
	// ComputeOutputHash returns a digest of the emitted rows, independent of their order.
	ComputeOutputHash(rows []domain.Row) string
}
