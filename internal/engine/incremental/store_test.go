package incremental_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/engine/incremental"
)

func TestFingerprintStore_CaptureOverwrites(t *testing.T) {
	t.Parallel()

	s := incremental.NewFingerprintStore()

	_, ok := s.Get("/a.js")
	assert.False(t, ok)

	s.Capture("/a.js", "v1", domain.Record{ID: "/a.js", Source: "v1"})
	s.Capture("/a.js", "v2", domain.Record{ID: "/a.js", Source: "v2"})

	fp, ok := s.Get("/a.js")
	require.True(t, ok)
	assert.False(t, fp.Stale())
	assert.Equal(t, "v2", fp.Input)
	assert.Equal(t, "v2", fp.Output.Source)
	assert.Equal(t, 1, s.Len())
}

func TestFingerprintStore_InvalidateKeepsKey(t *testing.T) {
	t.Parallel()

	s := incremental.NewFingerprintStore()
	s.Capture("/a.js", "v1", domain.Record{ID: "/a.js"})
	s.Invalidate("/a.js")

	fp, ok := s.Get("/a.js")
	require.True(t, ok, "sentinel must be distinct from absent")
	assert.True(t, fp.Stale())
	assert.Equal(t, 1, s.Len())

	s.Capture("/a.js", "v3", domain.Record{ID: "/a.js"})
	fp, _ = s.Get("/a.js")
	assert.False(t, fp.Stale())
}

func TestFingerprintStore_CaptureClonesDeps(t *testing.T) {
	t.Parallel()

	s := incremental.NewFingerprintStore()
	deps := map[string]string{"./b": "/b.js"}
	s.Capture("/a.js", "x", domain.Record{ID: "/a.js", Deps: deps})

	deps["./c"] = "/c.js"

	fp, _ := s.Get("/a.js")
	assert.Equal(t, map[string]string{"./b": "/b.js"}, fp.Output.Deps)
}

func TestFingerprintStore_FilesSorted(t *testing.T) {
	t.Parallel()

	s := incremental.NewFingerprintStore()
	s.Capture("/c.js", "", domain.Record{})
	s.Capture("/a.js", "", domain.Record{})
	s.Capture("/b.js", "", domain.Record{})

	assert.Equal(t, []string{"/a.js", "/b.js", "/c.js"}, slices.Collect(s.Files()))
}

func TestSessionTracker_ResetKeepsKeys(t *testing.T) {
	t.Parallel()

	tr := incremental.NewSessionTracker()
	tr.Track("/a.js")
	tr.MarkValidated("/a.js")
	tr.MarkValidated("/b.js")

	assert.True(t, tr.IsValidated("/a.js"))
	assert.True(t, tr.IsValidated("/b.js"))

	tr.Reset()

	assert.False(t, tr.IsValidated("/a.js"))
	assert.False(t, tr.IsValidated("/b.js"))
	assert.Equal(t, 2, tr.Len())
}

func TestSessionTracker_TrackClearsFlag(t *testing.T) {
	t.Parallel()

	tr := incremental.NewSessionTracker()
	tr.MarkValidated("/a.js")
	tr.Track("/a.js")

	assert.False(t, tr.IsValidated("/a.js"))
	assert.False(t, tr.IsValidated("/unknown.js"))
}
