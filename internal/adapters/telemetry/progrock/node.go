package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	// The recorder holds one vertex per bundle build.
	NodeID graft.ID = "adapter.telemetry.progrock"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return New(), nil
		},
	})
}
