package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelXML = `<?xml version="1.0" encoding="ISO-8859-1" standalone="yes"?>
<nite:root nite:id="ES2002a.A.words" xmlns:nite="http://nite.sourceforge.net/">
   <w nite:id="ES2002a.A.words0" starttime="53.56" endtime="53.96">Okay</w>
   <w nite:id="ES2002a.A.words1" starttime="53.96" endtime="53.96" punc="true">.</w>
   <vocalsound nite:id="ES2002a.A.words2" starttime="55.13" endtime="55.77" type="laugh"/>
   <disfmarker nite:id="ES2002a.A.words3" starttime="56.01"/>
   <w nite:id="ES2002a.A.wordsx4">Um</w>
</nite:root>
`

func TestReadChannel(t *testing.T) {
	elems, err := ReadChannel(strings.NewReader(channelXML))
	require.NoError(t, err)
	require.Len(t, elems, 5)

	okay := elems[0]
	assert.Equal(t, "ES2002a.A.words0", okay.ID)
	assert.True(t, okay.Lexical())
	assert.Equal(t, "Okay", okay.Text)
	require.NotNil(t, okay.StartTime)
	require.NotNil(t, okay.EndTime)
	assert.InDelta(t, 53.56, *okay.StartTime, 1e-9)
	assert.InDelta(t, 53.96, *okay.EndTime, 1e-9)
	assert.Nil(t, okay.Punc)

	require.NotNil(t, elems[1].Punc)
	assert.True(t, *elems[1].Punc)

	laugh := elems[2]
	assert.False(t, laugh.Lexical())
	assert.Equal(t, "vocalsound", laugh.Name)
	assert.Empty(t, laugh.Text)

	disf := elems[3]
	require.NotNil(t, disf.StartTime)
	assert.Nil(t, disf.EndTime)

	assert.Equal(t, "ES2002a.A.wordsx4", elems[4].ID)
}

func TestReadChannel_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<nite:root xmlns:nite=\"http://nite.sourceforge.net/\"><w nite:id=\"IS1000a.B.words0\">caf\xe9</w></nite:root>"

	elems, err := ReadChannel(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "café", elems[0].Text)
}

func TestReadChannel_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad starttime", `<root><w id="a.A.words0" starttime="soon">x</w></root>`},
		{"bad endtime", `<root><w id="a.A.words0" starttime="1" endtime="?">x</w></root>`},
		{"truncated", `<root><w id="a.A.words0">x`},
		{"unknown charset", `<?xml version="1.0" encoding="x-nonsense"?><root/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadChannel(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestReadChannelFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ES2002a.A.words.xml")
	require.NoError(t, os.WriteFile(path, []byte(channelXML), 0o644))

	elems, err := ReadChannelFile(path)
	require.NoError(t, err)
	assert.Len(t, elems, 5)

	_, err = ReadChannelFile(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
