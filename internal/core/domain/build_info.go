package domain

import "time"

// BuildInfo is the report of the last build of a bundle.
type BuildInfo struct {
	Bundle      string       `json:"bundle,omitzero"`
	Status      VertexStatus `json:"status,omitzero"`
	Session     int          `json:"session,omitzero"`
	Rows        int          `json:"rows,omitzero"`
	Hits        int64        `json:"hits,omitzero"`
	Misses      int64        `json:"misses,omitzero"`
	Validations int64        `json:"validations,omitzero"`
	OutputHash  string       `json:"output_hash,omitzero"`
	Timestamp   time.Time    `json:"timestamp,omitzero"`
}
