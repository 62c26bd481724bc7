package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/core/ports"
)

// NodeID is the unique identifier for the concrete logger Graft node.
const NodeID graft.ID = "adapter.logger"

// PortNodeID exposes the same logger as ports.Logger.
const PortNodeID graft.ID = "adapter.logger.port"

func init() {
	graft.Register(graft.Node[*Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Logger]{
		ID:        PortNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			return graft.Dep[*Logger](ctx)
		},
	})
}
