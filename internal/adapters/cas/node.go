package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/core/ports"
)

const NodeID graft.ID = "adapter.build_info_store"

func init() {
	// The store path comes from the loaded configuration, so the node hands out an opener.
	graft.Register(graft.Node[ports.BuildInfoStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BuildInfoStoreFactory, error) {
			return Open, nil
		},
	})
}
