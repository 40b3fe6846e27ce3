package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/nuitkactl/internal/registry"
)

func TestName_IsKnownValue(t *testing.T) {
	assert.Contains(t, []string{"windows", "darwin", "linux"}, Name())
}

func TestPredicates_ExactlyOneTrue(t *testing.T) {
	count := 0
	for _, b := range []bool{IsWindows(), IsMacOS(), IsLinux()} {
		if b {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAvailableCompilers_AutoFirst(t *testing.T) {
	compilers := AvailableCompilers()
	require.NotEmpty(t, compilers)
	assert.Equal(t, "auto", compilers[0])
}

func TestDefaultCompiler_NonEmpty(t *testing.T) {
	def := DefaultCompiler()
	assert.Contains(t, []string{"auto", "msvc", "mingw64"}, def)
	if !IsWindows() {
		assert.Equal(t, "auto", def)
	}
}

func TestHasNuitka_BogusInterpreter(t *testing.T) {
	assert.False(t, HasNuitka("definitely-not-a-real-binary-xyz"))
	assert.Equal(t, "not installed", NuitkaVersion("definitely-not-a-real-binary-xyz"))
}

func TestAllows(t *testing.T) {
	unconstrained := &registry.Definition{Key: "basic.mode"}
	assert.True(t, Allows(unconstrained, "windows"))
	assert.True(t, Allows(unconstrained, "linux"))

	windowsOnly := &registry.Definition{
		Key:                 "platform.windows.icon",
		PlatformConstraints: &registry.PlatformConstraints{OS: []string{"windows"}},
	}
	assert.True(t, Allows(windowsOnly, "windows"))
	assert.False(t, Allows(windowsOnly, "linux"))
	assert.False(t, Allows(windowsOnly, "darwin"))

	multi := &registry.Definition{
		Key:                 "platform.posix.icon",
		PlatformConstraints: &registry.PlatformConstraints{OS: []string{"linux", "darwin"}},
	}
	assert.True(t, Allows(multi, "linux"))
	assert.True(t, Allows(multi, "darwin"))
	assert.False(t, Allows(multi, "windows"))

	assert.True(t, Allows(nil, "linux"))
	empty := &registry.Definition{PlatformConstraints: &registry.PlatformConstraints{}}
	assert.True(t, Allows(empty, "windows"))
}
