package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.senan.xyz/pathtag"
	"go.senan.xyz/pathtag/cmd/internal/flags"
	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/tagmap"
)

func TestInspectedText(t *testing.T) {
	t.Parallel()

	fromPath, ok := metadata.FullFromPath("artist/2003 - album/02 - noise.flac")
	require.True(t, ok)
	fromTags := fromPath
	fromTags.Album = "another album"

	res := pathtag.Result{Path: "a.flac", Matched: true, FromPath: &fromPath, FromTags: &fromTags}
	res.Score, res.Diffs = tagmap.DiffFull(tagmap.TagWeights{}, fromPath, fromTags)

	var buf bytes.Buffer
	printer{w: &buf, output: flags.OutputText}.inspected(res)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+len(res.Diffs))
	assert.Regexp(t, `^a\.flac\s+\d+\.\d+%`, lines[0])
	assert.Regexp(t, `^\* album\s+album\s+another album`, lines[2])
	assert.Regexp(t, `^\s*artist\s+artist\s+artist`, lines[1])
}

var errWrite = errors.New("can't write")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestPatternsWriteError(t *testing.T) {
	t.Parallel()

	reg := metadata.NewRegistry()
	for _, output := range []flags.Output{flags.OutputText, flags.OutputJSON} {
		err := printer{w: errWriter{}, output: output}.patterns(reg)
		require.ErrorIs(t, err, errWrite, output)
	}

	var buf bytes.Buffer
	require.NoError(t, printer{w: &buf, output: flags.OutputJSON}.patterns(reg))
	assert.Equal(t, reg.Len(), strings.Count(buf.String(), "\n"))
}
