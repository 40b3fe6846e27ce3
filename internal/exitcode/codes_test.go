package exitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeValues(t *testing.T) {
	assert.Equal(t, 0, Success)
	assert.Equal(t, 1, Error)
	assert.Equal(t, 2, ConfigInvalid)
	assert.Equal(t, 3, BuildFailed)
	assert.Equal(t, 4, NuitkaMissing)
	assert.Equal(t, 130, Interrupted)
}

func TestName(t *testing.T) {
	assert.Equal(t, "Success", Name(Success))
	assert.Equal(t, "Error", Name(Error))
	assert.Equal(t, "ConfigInvalid", Name(ConfigInvalid))
	assert.Equal(t, "BuildFailed", Name(BuildFailed))
	assert.Equal(t, "NuitkaMissing", Name(NuitkaMissing))
	assert.Equal(t, "Interrupted", Name(Interrupted))
	assert.Equal(t, "unknown", Name(42))
}
