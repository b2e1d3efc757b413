package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor(t *testing.T) {
	var c Cursor
	assert.False(t, c.HasMore())

	c.Advance("abc")
	assert.True(t, c.HasMore())
	assert.Equal(t, "abc", c.Next())

	c.Advance("")
	assert.False(t, c.HasMore())

	c.Advance("def")
	c.Reset()
	assert.False(t, c.HasMore())
	assert.Empty(t, c.Next())
}
