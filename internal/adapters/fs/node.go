package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/incr/internal/core/ports"
)

const (
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	ResolverNodeID   graft.ID = "adapter.fs.resolver"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
	OutputNodeID     graft.ID = "adapter.fs.output"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.FileSystem, error) {
			return NewFileSystem(), nil
		},
	})

	// Walker Node (Concrete implementation needed by Resolver)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.EntryResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.EntryResolver, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(walker), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        OutputNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.OutputWriter, error) {
			return NewOutputWriter(), nil
		},
	})
}
