package schema

import (
	"testing"

	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edgeList []types.Edge

func (l edgeList) Edges() []types.Edge { return l }

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"has guest", "Has Guest"},
		{"discussed topic", "Discussed Topic"},
		{"mentions", "Mentions"},
		{"recorded at", "Recorded At"},
		{"already Upper", "Already Upper"},
		{"double  space", "Double  Space"},
		{"élan vital", "Élan Vital"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.in))
		})
	}
}

func TestDeriveExample(t *testing.T) {
	edges := edgeList{
		{Source: "E1", Target: "G1", RelType: "has guest"},
		{Source: "E1", Target: "T1", RelType: "discussed topic"},
		{Source: "E2", Target: "G1", RelType: "has guest"},
	}

	s := Derive(edges)
	assert.Equal(t, []string{"Episode", "Has Guest", "Discussed Topic"}, s.Titles())
	assert.Equal(t, types.EpisodeColumnKey, s.Columns[0].Key)
	assert.True(t, s.Columns[0].Fixed)
}

func TestDeriveReservedColumnsComeFirst(t *testing.T) {
	edges := edgeList{
		{Source: "a", Target: "b", RelType: "mentions"},
		{Source: "a", Target: "c", RelType: "discussed topic"},
		{Source: "a", Target: "d", RelType: "recorded at"},
		{Source: "a", Target: "e", RelType: "has guest"},
		{Source: "a", Target: "f", RelType: "mentions"},
	}

	s := Derive(edges)
	assert.Equal(t, []string{"Episode", "Has Guest", "Discussed Topic", "Mentions", "Recorded At"}, s.Titles())

	col, ok := s.ColumnFor("recorded at")
	require.True(t, ok)
	assert.Equal(t, "recorded at", col.Key)
	assert.False(t, col.Fixed)
}

func TestDeriveWithoutReservedRelTypes(t *testing.T) {
	s := Derive(edgeList{{Source: "a", Target: "b", RelType: "mentions"}})
	assert.Equal(t, []string{"Episode", "Has Guest", "Discussed Topic", "Mentions"}, s.Titles())

	empty := Derive(edgeList{})
	assert.Equal(t, []string{"Episode", "Has Guest", "Discussed Topic"}, empty.Titles())
}

func TestDeriveIsDeterministic(t *testing.T) {
	edges := edgeList{
		{Source: "a", Target: "b", RelType: "z rel"},
		{Source: "a", Target: "b", RelType: "a rel"},
		{Source: "a", Target: "b", RelType: "m rel"},
		{Source: "a", Target: "b", RelType: "has guest"},
	}
	assert.Equal(t, Derive(edges), Derive(edges))
	assert.Equal(t, []string{"Episode", "Has Guest", "Discussed Topic", "Z Rel", "A Rel", "M Rel"}, Derive(edges).Titles())
}

func TestDeriveTitleCollision(t *testing.T) {
	edges := edgeList{
		{Source: "a", Target: "b", RelType: "Has guest"},
		{Source: "a", Target: "b", RelType: "co host"},
		{Source: "a", Target: "b", RelType: "Co host"},
	}

	s := Derive(edges)
	titles := s.Titles()
	assert.Equal(t, []string{"Episode", "Has Guest", "Discussed Topic", "Has Guest (Has guest)", "Co Host", "Co Host (Co host)"}, titles)

	seen := map[string]bool{}
	for _, c := range s.Columns {
		assert.False(t, seen[c.Key], "duplicate key %q", c.Key)
		seen[c.Key] = true
	}

	col, ok := s.ColumnFor("Co host")
	require.True(t, ok)
	assert.Equal(t, "Co host", col.Key)
}

func TestDeriveKeysNeverCollideWithFixedColumns(t *testing.T) {
	edges := edgeList{
		{Source: "a", Target: "b", RelType: "episode"},
		{Source: "a", Target: "b", RelType: "Episode"},
		{Source: "a", Target: "b", RelType: "Has guest"},
		{Source: "a", Target: "b", RelType: "Has Guest"},
		{Source: "a", Target: "b", RelType: "has guest"},
		{Source: "a", Target: "b", RelType: ""},
	}

	s := Derive(edges)
	assert.Equal(t, []string{
		"Episode", "Has Guest", "Discussed Topic",
		"Episode (episode)", "Episode (Episode)", "Has Guest (Has guest)", "Has Guest (Has Guest)",
	}, s.Titles())

	keys := map[string]bool{}
	titles := map[string]bool{}
	for _, c := range s.Columns {
		assert.False(t, keys[c.Key], "duplicate key %q", c.Key)
		assert.False(t, titles[c.Title], "duplicate title %q", c.Title)
		keys[c.Key] = true
		titles[c.Title] = true
	}

	episodes := 0
	for _, c := range s.Columns {
		if c.IsEpisode() {
			episodes++
		}
	}
	assert.Equal(t, 1, episodes)
	assert.Len(t, s.RelColumns(), len(s.Columns)-1)

	col, ok := s.ColumnFor("episode")
	require.True(t, ok)
	assert.Equal(t, "episode", col.Key)
	assert.False(t, col.IsEpisode())
}
