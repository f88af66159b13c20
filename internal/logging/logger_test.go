package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo,
		"warning": LevelWarn, "error": LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := With(New(LevelWarn, "json", &buf), "component", "store")
	l.Info("dropped")
	l.Warn("persist failed", "key", "default")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "persist failed", rec["msg"])
	assert.Equal(t, "store", rec["component"])
	assert.Equal(t, "default", rec["key"])
}

func TestNoOp(t *testing.T) {
	var l Logger = NoOp{}
	l.Error("nothing happens")
	assert.Equal(t, l, With(l, "k", "v"))
}
