package tagmap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.senan.xyz/pathtag/metadata"
	"go.senan.xyz/pathtag/tags"
)

func TestAttributes(t *testing.T) {
	t.Parallel()

	tcases := []struct {
		name string
		tags tags.Tags
		exp  metadata.Attributes
	}{
		{
			name: "basic",
			tags: tags.NewTags("artist", " The Artist ", "album", "No Album", "title", "Silence", "tracknumber", "03/12", "date", "2003-05-01"),
			exp:  metadata.Attributes{"artist": "The Artist", "album": "No Album", "title": "Silence", "track": "3", "year": "2003"},
		},
		{
			name: "disc",
			tags: tags.NewTags("artist", "a", "album", "b", "title", "c", "track", "1", "disc", "2/2", "setsubtitle", "Bonus"),
			exp:  metadata.Attributes{"artist": "a", "album": "b", "title": "c", "track": "1", "discNum": "2", "discName": "Bonus"},
		},
		{
			name: "doubled performer",
			tags: tags.NewTags("artist", "Someone / Someone", "album", "b", "title", "c", "track", "1"),
			exp:  metadata.Attributes{"artist": "Someone", "album": "b", "title": "c", "track": "1"},
		},
		{
			name: "various artists",
			tags: tags.NewTags("artist", "Various Artists / Someone", "album", "b", "title", "c", "track", "1", "year", "1999"),
			exp:  metadata.Attributes{"artist": "Someone", "album": "b", "title": "c", "track": "1", "year": "1999", "compilation": "va"},
		},
		{
			name: "soundtrack album artist",
			tags: tags.NewTags("artist", "Composer", "albumartist", "Soundtrack / Ensemble", "album", "b", "title", "c", "track", "1"),
			exp:  metadata.Attributes{"artist": "Composer", "albumArtist": "Ensemble", "album": "b", "title": "c", "track": "1", "compilation": "ost"},
		},
		{
			name: "same album artist",
			tags: tags.NewTags("artist", "a", "album artist", "a", "album", "b", "title", "c", "track", "1"),
			exp:  metadata.Attributes{"artist": "a", "album": "b", "title": "c", "track": "1"},
		},
		{
			name: "odd date",
			tags: tags.NewTags("artist", "a", "album", "b", "title", "c", "track", "1", "date", "1971 (reissue)"),
			exp:  metadata.Attributes{"artist": "a", "album": "b", "title": "c", "track": "1", "year": "1971"},
		},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			attrs, ok := Attributes(tc.tags)
			require.True(t, ok)
			assert.Equal(t, tc.exp, attrs)
		})
	}
}

func TestAttributesFromFile(t *testing.T) {
	t.Parallel()

	tcases := []struct {
		file string
		exp  metadata.Attributes
	}{
		{"va.flac", metadata.Attributes{"artist": "Someone", "album": "Mixed", "title": "Track", "track": "4", "year": "1999", "compilation": "va"}},
		{"tagged.flac", metadata.Attributes{"artist": "The Artist", "album": "No Album", "title": "Silence [w- Other Artist]", "track": "1", "year": "2003", "discNum": "1"}},
	}
	for _, tc := range tcases {
		tt, err := tags.ReadTags(filepath.Join("..", "tags", "testdata", tc.file))
		require.NoError(t, err)

		attrs, ok := Attributes(tt)
		require.True(t, ok, tc.file)
		assert.Equal(t, tc.exp, attrs, tc.file)
	}
}

func TestAttributesMissing(t *testing.T) {
	t.Parallel()

	for _, tt := range []tags.Tags{
		tags.NewTags(),
		tags.NewTags("album", "b", "title", "c", "track", "1"),
		tags.NewTags("artist", " ", "album", "b", "title", "c", "track", "1"),
		tags.NewTags("artist", "a", "title", "c", "track", "1"),
		tags.NewTags("artist", "a", "album", "b", "track", "1"),
		tags.NewTags("artist", "a", "album", "b", "title", "c"),
		tags.NewTags("artist", "a", "album", "b", "title", "c", "track", "one"),
	} {
		_, ok := Attributes(tt)
		assert.False(t, ok)
	}
}

func TestWriteFullRoundTrip(t *testing.T) {
	t.Parallel()

	paths := []string{
		"something/artist 1 & artist 2/1983 - album/01 - title [feat- artist 3] [live].m4a",
		"something/VA - 1999 - mixed/CD 2/03 - someone - song.flac",
		"something/soundtrack/film/07 - composer - theme.flac",
		"something/artist - album/04 - title [remix].flac",
	}
	for _, p := range paths {
		full, ok := metadata.FullFromPath(p)
		require.True(t, ok, p)

		var tt tags.Tags
		WriteFull(&tt, full)

		back, ok := Full(p, tt)
		require.True(t, ok, p)
		assert.Equal(t, full, back, p)

		score, diffs := DiffFull(TagWeights{}, full, back)
		assert.Equal(t, 100.0, score, p)
		for _, d := range diffs {
			assert.True(t, d.Equal, d.Field)
		}
	}
}

func TestWriteFullStale(t *testing.T) {
	t.Parallel()

	full, ok := metadata.FullFromPath("artist/album/01 - title.flac")
	require.True(t, ok)

	tt := tags.NewTags(
		"albumartist", "Someone Else",
		"date", "1999",
		"discnumber", "3",
		"discsubtitle", "bonus",
		"genre", "ambient",
	)
	WriteFull(&tt, full)

	assert.Empty(t, tt.Values(tags.AlbumArtist))
	assert.Empty(t, tt.Values(tags.Date))
	assert.Empty(t, tt.Values(tags.DiscNumber))
	assert.Empty(t, tt.Values(tags.DiscSubtitle))
	assert.Equal(t, "ambient", tt.Get(tags.Genre))

	back, ok := Full("artist/album/01 - title.flac", tt)
	require.True(t, ok)
	assert.Equal(t, full.Artist, back.Artist)
	assert.Nil(t, back.Year)
	assert.Nil(t, back.Disk)
	assert.Nil(t, back.MoreArtists)
	assert.Equal(t, full, back)
}

func TestDiffFull(t *testing.T) {
	t.Parallel()

	fromPath, ok := metadata.FullFromPath("The Artist/2003 - No Album/01 - Silence [w- Other Artist].flac")
	require.True(t, ok)
	fromTags, ok := Full("x", tags.NewTags("artist", "The Artist", "album", "Another Album", "title", "Silence", "track", "1", "date", "2003"))
	require.True(t, ok)

	score, diffs := DiffFull(TagWeights{}, fromPath, fromTags)
	assert.Less(t, score, 100.0)
	assert.Greater(t, score, 50.0)

	byField := map[string]bool{}
	for _, d := range diffs {
		byField[d.Field] = d.Equal
	}
	assert.True(t, byField["artist"])
	assert.False(t, byField["album"])
	assert.True(t, byField["year"])
	assert.True(t, byField["title"])
	assert.False(t, byField["more artists"])
}

func TestDiffer(t *testing.T) {
	t.Parallel()

	var score float64
	diff := Differ(TagWeights{}, &score)

	diff("x", "aaaaa", "aaaaa")
	diff("x", "aaaaa", "aaaaX")
	assert.Equal(t, 90.0, score) // 9 of 10 chars the same
}

func TestDiffWeightsLowerBound(t *testing.T) {
	t.Parallel()

	weights := TagWeights{
		"album": 0,
		"year":  0,
	}

	var score float64
	diff := Differ(weights, &score)

	diff("album", "Columbia", "uh some other album")
	diff("year", "1999", "2003")

	diff("track 1", "The Day I Met God", "The Day I Met God")
	diff("track 2", "Catholic Day", "Catholic Day")
	diff("track 3", "Nine Plan Failed", "Nine Plan Failed")

	assert.Equal(t, 100.0, score)
}

func TestDiffNorm(t *testing.T) {
	t.Parallel()

	var score float64
	diff := Differ(TagWeights{}, &score)

	diff("album", "Columbia", "COLUMBIA")
	diff("artist", "Sigur Rós", "Sigur Ros")
	diff("title", "ＡＢＣ", "abc")

	assert.Equal(t, 100.0, score)
}

func TestDiffOnlyPunctuation(t *testing.T) {
	t.Parallel()

	var score float64
	diff := Differ(TagWeights{}, &score)

	d := diff("title", "!!", "??")
	assert.Equal(t, 0.0, score)
	assert.False(t, d.Equal)
}

func TestNormText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", normText(""))
	assert.Equal(t, "", normText(" "))
	assert.Equal(t, "123", normText(" 1!2!3 "))
	assert.Equal(t, "sean", normText("SÉan"))
	assert.Equal(t, "hello世界", normText("~~ 【 Hello, 世界。 】~~ 😉"))
}
