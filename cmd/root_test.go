package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ontologyXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <topicname nite:id="top.0" name="top">
    <topicname nite:id="top.1" name="opening"/>
    <topicname nite:id="top.4" name="other"/>
  </topicname>
</nite:root>
`
	wordsXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <w nite:id="TS3012b.A.words0" starttime="1.0" endtime="1.4">Hello</w>
  <w nite:id="TS3012b.A.words1" starttime="1.4" endtime="1.9">World</w>
  <w nite:id="TS3012b.A.words3" starttime="2.0" endtime="2.1" punc="true">!</w>
</nite:root>
`
	topicXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <topic nite:id="TS3012b.topic.1" description="opening">
    <nite:child href="TS3012b.A.words.xml#id(TS3012b.A.words0)..id(TS3012b.A.words3)"/>
  </topic>
</nite:root>
`
)

type cliCorpus struct {
	dir  string
	args []string
}

func newCLICorpus(t *testing.T) *cliCorpus {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	files := map[string]string{
		"ontologies/default-topics.xml": ontologyXML,
		"words/TS3012b.A.words.xml":     wordsXML,
		"topics/TS3012b.topic.xml":      topicXML,
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	return &cliCorpus{dir: dir, args: []string{
		"--words-dir", filepath.Join(dir, "words"),
		"--topics-dir", filepath.Join(dir, "topics"),
		"--ontology", filepath.Join(dir, "ontologies", "default-topics.xml"),
		"--output-dir", filepath.Join(dir, "out"),
		"--log-level", "error",
	}}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBatchCommand(t *testing.T) {
	c := newCLICorpus(t)
	metrics := filepath.Join(c.dir, "metrics.prom")

	out, err := run(t, append([]string{"batch", "--metrics-file", metrics}, c.args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "1 meetings: 1 ok, 0 failed")

	data, err := os.ReadFile(filepath.Join(c.dir, "out", "TS3012b.json"))
	require.NoError(t, err)
	var forest []map[string]any
	require.NoError(t, json.Unmarshal(data, &forest))
	require.Len(t, forest, 1)
	assert.Equal(t, "top.1", forest[0]["topic_idx"])
	sentence := forest[0]["sentences"].([]any)[0].(map[string]any)
	assert.Equal(t, "Hello World  !", sentence["text"])

	assert.FileExists(t, filepath.Join(c.dir, "out", "manifest.json"))

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `amitopics_meetings_total{status="ok"} 1`)
}

func TestBatchCommand_ReportsFailures(t *testing.T) {
	c := newCLICorpus(t)
	broken := `<nite:root xmlns:nite="http://nite.sourceforge.net/">
  <topic nite:id="TS3012c.topic.1"><nite:child href="not-a-reference"/></topic>
</nite:root>`
	require.NoError(t, os.WriteFile(filepath.Join(c.dir, "topics", "TS3012c.topic.xml"), []byte(broken), 0o644))

	out, err := run(t, append([]string{"batch", "--manifest=false"}, c.args...)...)
	require.Error(t, err)
	assert.Contains(t, out, "2 meetings: 1 ok, 1 failed")
	assert.Contains(t, out, `"not-a-reference"`)
	assert.FileExists(t, filepath.Join(c.dir, "out", "TS3012b.json"))
	assert.NoFileExists(t, filepath.Join(c.dir, "out", "manifest.json"))
}

func TestMeetingCommand_Stdout(t *testing.T) {
	c := newCLICorpus(t)

	args := append([]string{"meeting", "--stdout", "--format", "yaml", filepath.Join(c.dir, "topics", "TS3012b.topic.xml")}, c.args...)
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "topic_idx: top.1")
	assert.Contains(t, out, "text: Hello World  !")
	assert.NoDirExists(t, filepath.Join(c.dir, "out"))
}

func TestMeetingCommand_MissingFile(t *testing.T) {
	c := newCLICorpus(t)

	_, err := run(t, append([]string{"meeting", filepath.Join(c.dir, "topics", "nope.topic.xml")}, c.args...)...)
	assert.Error(t, err)
}

func TestTaxonomyCommand_RoundTrip(t *testing.T) {
	c := newCLICorpus(t)

	out, err := run(t, append([]string{"taxonomy"}, c.args...)...)
	require.NoError(t, err)
	assert.Equal(t, "top.0: top\ntop.1: opening\ntop.4: other\n", out)

	mapPath := filepath.Join(c.dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(mapPath, []byte(out), 0o644))

	again, err := run(t, append([]string{"taxonomy", "--taxonomy-map", mapPath}, c.args...)...)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRootCommand_BadFormat(t *testing.T) {
	c := newCLICorpus(t)

	_, err := run(t, append([]string{"batch", "--format", "csv"}, c.args...)...)
	assert.Error(t, err)
}
