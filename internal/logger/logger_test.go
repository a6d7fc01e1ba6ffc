package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestInitJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: LevelInfo, Format: "json", Output: &buf}))

	Debug("hidden")
	LogExpansion("a.jbind", "Foo", 2, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Expanded class", record["msg"])
	assert.Equal(t, "Foo", record["class"])
	assert.EqualValues(t, 2, record["bridges"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, Init(Config{Format: "xml"}))
}
