package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	cases := map[string][]string{
		"React, Node, React": {"React", "Node", "React"},
		" , ,":               {},
		"":                   {},
		"Go":                 {"Go"},
		"  Go ,Rust,, ":      {"Go", "Rust"},
		"a b, c":             {"a b", "c"},
	}
	for in, want := range cases {
		got := SplitList(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, got, in)
	}
}

func TestJoinListRoundTrip(t *testing.T) {
	items := []string{"Go", "Rust", "Go"}
	assert.Equal(t, "Go, Rust, Go", JoinList(items))
	assert.Equal(t, items, SplitList(JoinList(items)))
	assert.Equal(t, "", JoinList(nil))
}

func TestParseExperienceLevel(t *testing.T) {
	for _, s := range []string{"intern", "entry", "mid", "senior"} {
		l, err := ParseExperienceLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(l))
		assert.True(t, l.Valid())
	}
	_, err := ParseExperienceLevel("principal")
	assert.Error(t, err)
	assert.False(t, ExperienceLevel("").Valid())
}
