package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/incr/internal/build"
)

func TestString(t *testing.T) {
	assert.Equal(t, build.Version, build.String())

	build.Commit = "abc1234"
	t.Cleanup(func() { build.Commit = "" })
	assert.Equal(t, build.Version+" (abc1234)", build.String())
}
