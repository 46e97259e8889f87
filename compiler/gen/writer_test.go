package gen

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	assert.Equal(t, ".json", f.Ext())

	f, err = ParseFormat("msgpack")
	require.NoError(t, err)
	assert.Equal(t, ".msgpack", f.Ext())

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	g, err := NewGraph(loadSchema(t, testSchema))
	require.NoError(t, err)

	check := func(t *testing.T, doc map[string]any) {
		t.Helper()
		nodes, ok := doc["nodes"].([]any)
		require.True(t, ok)
		require.Len(t, nodes, 2)
		user, ok := nodes[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "User", user["name"])
		fields, ok := user["fields"].([]any)
		require.True(t, ok)
		id, ok := fields[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "text NOT NULL", id["storage_type"])
		assert.Equal(t, "id", id["app_type"])
		assert.NotContains(t, doc, "Config")
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, g.Encode(&buf, FormatJSON))
		var doc map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		check(t, doc)
	})

	t.Run("msgpack", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, g.Encode(&buf, FormatMsgpack))
		var doc map[string]any
		require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &doc))
		check(t, doc)
	})

	require.Error(t, g.Encode(&bytes.Buffer{}, Format("xml")))
}

func TestWriteFiles(t *testing.T) {
	g, err := NewGraph(loadSchema(t, testSchema))
	require.NoError(t, err)
	dir := t.TempDir()

	path := filepath.Join(dir, "out", "graph.json")
	require.NoError(t, g.WriteFile(path, FormatJSON))
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(buf))

	gopath := filepath.Join(dir, "bindings", "bindings.go")
	require.NoError(t, g.WriteGo(gopath))
	buf, err = os.ReadFile(gopath)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "package bindings")
}
