package metadata_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.senan.xyz/pathtag/metadata"
)

func TestFullFromObjMissing(t *testing.T) {
	t.Parallel()

	const path = "something/artist 1 & artist 2 - 1983 - album/101 - title.m4a"
	md, ok := metadata.FromPath(path)
	require.True(t, ok)

	for _, k := range []string{metadata.AttrAlbum, metadata.AttrTrack, metadata.AttrTitle, metadata.AttrArtist} {
		attrs := md.Attributes()
		delete(attrs, k)
		_, ok := metadata.FullFromObj(path, attrs)
		assert.False(t, ok, k)
	}

	// album artist stands in for artist
	attrs := md.Attributes()
	delete(attrs, metadata.AttrArtist)
	attrs[metadata.AttrAlbumArtist] = "someone"
	full, ok := metadata.FullFromObj(path, attrs)
	require.True(t, ok)
	assert.Equal(t, metadata.Artists{"someone"}, full.Artist)
	assert.Nil(t, full.MoreArtists)
}

func TestFullFromObjTrackNotNumeric(t *testing.T) {
	t.Parallel()

	_, ok := metadata.FullFromObj("x", metadata.Attributes{"artist": "a", "album": "b", "track": "one", "title": "c"})
	assert.False(t, ok)
}

func TestFullFromObjTrackDisc(t *testing.T) {
	t.Parallel()

	base := func(kv ...string) metadata.Attributes {
		attrs := metadata.Attributes{"artist": "a", "album": "b", "title": "c"}
		for i := 0; i < len(kv)-1; i += 2 {
			attrs[kv[i]] = kv[i+1]
		}
		return attrs
	}

	tcases := []struct {
		attrs metadata.Attributes
		track int
		disk  *int
	}{
		{base("track", "7"), 7, nil},
		{base("track", "99"), 99, nil},
		{base("track", "101"), 1, intp(1)},
		{base("track", "1234"), 34, intp(12)},
		{base("track", "1200"), 0, intp(12)},
		{base("track", "7/12"), 7, nil},
		{base("track", "1234", "discNum", "2"), 1234, intp(2)},
		{base("track", "5", "discNum", "03"), 5, intp(3)},
		{base("track", "5", "discNum", ""), 5, nil},
	}
	for _, tc := range tcases {
		full, ok := metadata.FullFromObj("x", tc.attrs)
		require.True(t, ok, tc.attrs)
		assert.Equal(t, tc.track, full.Track, tc.attrs)
		assert.Equal(t, tc.disk, full.Disk, tc.attrs)
	}
}

func TestFullFromObjAlbumArtist(t *testing.T) {
	t.Parallel()

	const path = "something/artist 1 - 1983 - album/101 - title [w- artist 2].m4a"
	md, ok := metadata.FromPath(path)
	require.True(t, ok)

	attrs := md.Attributes()
	attrs[metadata.AttrMoreArtists] = "artist 3"
	attrs[metadata.AttrAlbumArtist] = "artist 2"

	full, ok := metadata.FullFromObj(path, attrs)
	require.True(t, ok)
	assert.Equal(t, metadata.Full{
		OriginalPath: path,
		Artist:       metadata.Artists{"artist 2"},
		Album:        "album",
		Year:         intp(1983),
		Track:        1,
		Disk:         intp(1),
		Title:        "title",
		MoreArtists:  []string{"artist 2", "artist 1", "artist 3"},
	}, full)
}

func TestFullFromObjAlbumArtistWithoutTitleArtists(t *testing.T) {
	t.Parallel()

	full, ok := metadata.FullFromObj("x", metadata.Attributes{
		"artist":      "track artist",
		"albumArtist": "album artist 1 & album artist 2",
		"album":       "b",
		"track":       "3",
		"title":       "c",
	})
	require.True(t, ok)
	assert.Equal(t, metadata.Artists{"album artist 1", "album artist 2"}, full.Artist)
	assert.True(t, full.Artist.IsList())
	assert.Equal(t, []string{"track artist"}, full.MoreArtists)

	// the same artist twice is no secondary artist
	full, ok = metadata.FullFromObj("x", metadata.Attributes{"artist": "a", "albumArtist": "a", "album": "b", "track": "3", "title": "c"})
	require.True(t, ok)
	assert.Nil(t, full.MoreArtists)
}

func TestFullFromObjOptional(t *testing.T) {
	t.Parallel()

	full, ok := metadata.FullFromObj("x", metadata.Attributes{
		"artist":      "a, b",
		"album":       "b",
		"track":       "3",
		"title":       "c",
		"year":        "not a year",
		"compilation": "yes",
		"discName":    "the second",
	})
	require.True(t, ok)
	assert.Equal(t, metadata.Artists{"a, b"}, full.Artist)
	assert.False(t, full.Artist.IsList())
	assert.Nil(t, full.Year)
	assert.Empty(t, full.VAType)
	assert.Equal(t, "the second", full.DiskName)
	assert.Nil(t, full.MoreArtists)
	assert.Nil(t, full.Variations)
	assert.True(t, full.Valid())
}

func TestFullJSON(t *testing.T) {
	t.Parallel()

	full, ok := metadata.FullFromPath("something/artist 1 & artist 2/1983 - album/01 - title [live].m4a")
	require.True(t, ok)

	b, err := json.Marshal(full)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"originalPath": "something/artist 1 & artist 2/1983 - album/01 - title [live].m4a",
		"artist": ["artist 1", "artist 2"],
		"album": "album",
		"year": 1983,
		"track": 1,
		"title": "title",
		"variations": ["live"]
	}`, string(b))

	var back metadata.Full
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, full, back)

	full.Artist = metadata.Artists{"just one"}
	b, err = json.Marshal(full.Artist)
	require.NoError(t, err)
	assert.Equal(t, `"just one"`, string(b))
}

func TestFullValid(t *testing.T) {
	t.Parallel()

	assert.False(t, metadata.Full{}.Valid())
	assert.True(t, metadata.Full{Artist: metadata.Artists{"a"}}.Valid())
	assert.False(t, metadata.Full{Artist: metadata.Artists{"a"}, VAType: "xx"}.Valid())
	assert.False(t, metadata.Full{Artist: metadata.Artists{"a"}, MoreArtists: []string{}}.Valid())
}

func TestIsSimple(t *testing.T) {
	t.Parallel()

	assert.True(t, metadata.IsSimple(metadata.Attributes{"artist": "a", "album": "b", "track": "1", "title": "c"}))
	assert.True(t, metadata.IsSimple(metadata.Attributes{"artist": "a", "album": "b", "track": "1", "title": "c", "compilation": "ost", "other": "x"}))
	assert.False(t, metadata.IsSimple(metadata.Attributes{"artist": "a", "album": "b", "track": "1"}))
	assert.False(t, metadata.IsSimple(metadata.Attributes{"artist": "a", "album": "b", "track": "1", "title": "c", "compilation": "yes"}))
	assert.False(t, metadata.IsSimple(metadata.Attributes{"artist": "a", "album": "b", "track": "1", "title": "c", "compilation": ""}))
}

func TestArtistsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", metadata.Artists{}.String())
	assert.Equal(t, "a", metadata.Artists{"a"}.String())
	assert.Equal(t, "a & b", metadata.Artists{"a", "b"}.String())
	assert.Equal(t, "a, b & c", metadata.Artists{"a", "b", "c"}.String())
}
