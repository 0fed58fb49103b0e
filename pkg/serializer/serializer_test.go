package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testPayload struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("out.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("OUT.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("stack.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("stack.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("unknown.txt"))
}

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, Format("yaml").IsUnknown())
	assert.False(t, Format("json").IsUnknown())
	assert.True(t, Format("table").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}

func TestWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	require.NoError(t, w.Serialize(context.Background(), testPayload{Name: "vllm", Count: 2}))

	var got testPayload
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testPayload{Name: "vllm", Count: 2}, got)
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.Serialize(context.Background(), testPayload{Name: "vllm", Count: 2}))

	var got testPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testPayload{Name: "vllm", Count: 2}, got)
}

func TestWriterDocumentSeparatorYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	require.NoError(t, w.Serialize(context.Background(), testPayload{Name: "a", Count: 1}))
	require.NoError(t, w.WriteDocumentSeparator())
	require.NoError(t, w.Serialize(context.Background(), testPayload{Name: "b", Count: 2}))

	// Output must parse as a multi-document stream
	dec := yaml.NewDecoder(&buf)
	var docs []testPayload
	for {
		var p testPayload
		if err := dec.Decode(&p); err != nil {
			break
		}
		docs = append(docs, p)
	}
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Name)
	assert.Equal(t, "b", docs[1].Name)
}

func TestWriterDocumentSeparatorJSONNoop(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.WriteDocumentSeparator())
	assert.Zero(t, buf.Len())
}

func TestWriterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	assert.Error(t, w.Serialize(ctx, testPayload{}))
	assert.Zero(t, buf.Len())
}

func TestWriterUnknownFormatDefaultsToYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("bogus"), &buf)
	require.NoError(t, w.Serialize(context.Background(), testPayload{Name: "x"}))
	assert.Contains(t, buf.String(), "name: x")
}

func TestFileWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	w := NewFileWriterOrStdout(FormatYAML, path)
	require.NoError(t, w.Serialize(context.Background(), testPayload{Name: "roundtrip", Count: 7}))
	require.NoError(t, w.Close())

	got, err := FromFile[testPayload](path)
	require.NoError(t, err)
	assert.Equal(t, &testPayload{Name: "roundtrip", Count: 7}, got)
}

func TestDeserializeYAMLHonorsJSONTags(t *testing.T) {
	// Kubernetes API types carry json tags only; YAML input must still
	// map their fields.
	var v struct {
		GracePeriod int64 `json:"gracePeriodSeconds"`
	}
	require.NoError(t, Deserialize(FormatYAML, strings.NewReader("gracePeriodSeconds: 30\n"), &v))
	assert.Equal(t, int64(30), v.GracePeriod)
}

func TestFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"j","count":3}`), 0600))

	got, err := FromFile[testPayload](path)
	require.NoError(t, err)
	assert.Equal(t, &testPayload{Name: "j", Count: 3}, got)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile[testPayload]("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}

func TestWriterCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.yaml")
	w := NewFileWriterOrStdout(FormatYAML, path)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
