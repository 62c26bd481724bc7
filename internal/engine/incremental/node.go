package incremental

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/incr/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/incr/internal/core/ports"
)

// NodeID is the unique identifier for the shared cache context Graft node.
const NodeID graft.ID = "engine.incremental"

func init() {
	graft.Register(graft.Node[*Context]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FileSystemNodeID,
			fs.HasherNodeID,
			logger.PortNodeID,
		},
		Run: func(ctx context.Context) (*Context, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewContext(fsys, log, WithHasher(hasher)), nil
		},
	})
}
