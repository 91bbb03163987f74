package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "difr dev (commit: none, built: unknown)", String("difr"))
}
