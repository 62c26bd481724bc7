// Package domain contains the core types shared by the cache, the host pipeline and the adapters.
package domain

import "maps"

// Record is the resolved output for one source file: what the dependency
// resolver would have produced had it read and processed the file itself.
type Record struct {
	ID     string            `json:"id"`
	Source string            `json:"source"`
	Deps   map[string]string `json:"deps"`
	File   string            `json:"file"`
}

// Clone returns a deep copy of the record. Deps are never shared between copies.
func (r Record) Clone() Record {
	r.Deps = cloneDeps(r.Deps)
	return r
}

// Row is a dependency row flowing through the host pipeline, one per source file.
type Row struct {
	ID     string            `json:"id"`
	File   string            `json:"file"`
	Source string            `json:"source"`
	Deps   map[string]string `json:"deps"`
	Entry  bool              `json:"entry,omitzero"`
}

// Record derives the output record for the row, keyed by filename.
func (r Row) Record() Record {
	return Record{
		ID:     r.File,
		Source: r.Source,
		Deps:   cloneDeps(r.Deps),
		File:   r.File,
	}
}

// RowFromRecord builds a row from a cached record.
func RowFromRecord(rec Record) Row {
	return Row{
		ID:     rec.ID,
		File:   rec.File,
		Source: rec.Source,
		Deps:   cloneDeps(rec.Deps),
	}
}

func cloneDeps(deps map[string]string) map[string]string {
	if deps == nil {
		return map[string]string{}
	}
	return maps.Clone(deps)
}
