package domain

// Fingerprint pairs the exact content of a file with the record derived from it.
// Input and Output come from the same row observation and are never updated
// independently.
type Fingerprint struct {
	Input  string
	Output Record

	stale bool
}

// NewFingerprint captures content and its derived record. The record is cloned.
func NewFingerprint(input string, output Record) *Fingerprint {
	return &Fingerprint{
		Input:  input,
		Output: output.Clone(),
	}
}

// StaleFingerprint returns the sentinel stored in place of an entry whose
// validation failed. It is distinct from an absent entry.
func StaleFingerprint() *Fingerprint {
	return &Fingerprint{stale: true}
}

// Stale reports whether the fingerprint is the invalidation sentinel.
func (f *Fingerprint) Stale() bool {
	return f.stale
}
