package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONKeepsMarkupCharacters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]string{"original": "a < b & c"}))
	assert.Equal(t, "{\n  \"original\": \"a < b & c\"\n}\n", buf.String())
}
