package incremental_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/incremental"
)

type stubStage struct {
	cache  ports.DepsCache
	pushed []ports.Transform
}

func (s *stubStage) Push(t ports.Transform) { s.pushed = append(s.pushed, t) }
func (s *stubStage) Cache() ports.DepsCache { return s.cache }

type stubPipeline struct {
	stages map[string]ports.Stage
}

func (p *stubPipeline) Get(label string) (ports.Stage, bool) {
	s, ok := p.stages[label]
	return s, ok
}

func (p *stubPipeline) Labels() []string { return nil }

type stubBundler struct {
	pipeline  ports.Pipeline
	listeners []func() error
}

func (b *stubBundler) OnReset(fn func() error) { b.listeners = append(b.listeners, fn) }
func (b *stubBundler) Pipeline() ports.Pipeline { return b.pipeline }

func TestPlugin_Apply_RejectsInvalidBundlers(t *testing.T) {
	t.Parallel()

	c := incremental.NewContext(newDiskFS(map[string]string{}), quietLogger(t))
	p := incremental.NewPlugin(c)

	tests := []struct {
		name    string
		bundler ports.Bundler
		want    error
	}{
		{
			name:    "nil bundler",
			bundler: nil,
			want:    domain.ErrInvalidBundler,
		},
		{
			name:    "no pipeline",
			bundler: &stubBundler{},
			want:    domain.ErrInvalidBundler,
		},
		{
			name:    "no deps stage",
			bundler: &stubBundler{pipeline: &stubPipeline{stages: map[string]ports.Stage{}}},
			want:    domain.ErrStageNotFound,
		},
		{
			name: "deps stage without cache",
			bundler: &stubBundler{pipeline: &stubPipeline{stages: map[string]ports.Stage{
				ports.StageDeps: &stubStage{},
			}}},
			want: domain.ErrInvalidBundler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := p.Apply(tt.bundler)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPlugin_Apply_PushesSessionAndRegistersReset(t *testing.T) {
	t.Parallel()

	c := incremental.NewContext(newDiskFS(map[string]string{}), quietLogger(t))
	stage := &stubStage{cache: newLookupTable()}
	b := &stubBundler{pipeline: &stubPipeline{stages: map[string]ports.Stage{ports.StageDeps: stage}}}

	require.NoError(t, incremental.NewPlugin(c).Apply(b))
	require.Len(t, stage.pushed, 1)
	require.Len(t, b.listeners, 1)

	require.NoError(t, b.listeners[0]())
	assert.Len(t, stage.pushed, 2)
	assert.Equal(t, int64(2), c.Stats().Sessions)
}

func TestPlugin_SessionStageInstallsAccessorOnDepsCache(t *testing.T) {
	t.Parallel()

	disk := newDiskFS(map[string]string{"/a.js": "console.log(1)"})
	c := incremental.NewContext(disk, quietLogger(t))
	table := newLookupTable()
	stage := &stubStage{cache: table}
	b := &stubBundler{pipeline: &stubPipeline{stages: map[string]ports.Stage{ports.StageDeps: stage}}}

	require.NoError(t, incremental.NewPlugin(c).Apply(b))
	_, err := stage.pushed[0].Transform(context.Background(), rowA())
	require.NoError(t, err)
	require.True(t, table.Has("/a.js"))

	require.NoError(t, b.listeners[0]())

	rec, ok := table.Get("/a.js")
	require.True(t, ok, "the accessor outlives the session that installed it")
	assert.Equal(t, rowA().Record(), rec)
	assert.Equal(t, int64(1), c.Stats().Hits)
}
