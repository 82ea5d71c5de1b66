package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewDocumentIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := newDocumentID()
		assert.Len(t, id, 24)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestByID(t *testing.T) {
	filter := byID("abc")
	assert.Equal(t, bson.M{"_id": "abc"}, filter)
}

func TestTitleRegexIsCaseInsensitive(t *testing.T) {
	filter := titleRegex("title", "algebra")

	inner, ok := filter["title"].(bson.M)
	require.True(t, ok)
	regex, ok := inner["$regex"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "algebra", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestTitleRegexQuotesMetacharacters(t *testing.T) {
	cases := map[string]string{
		"c++":       `c\+\+`,
		"(":         `\(`,
		"a.b":       `a\.b`,
		"[advanced]": `\[advanced\]`,
	}
	for query, want := range cases {
		filter := titleRegex("title", query)
		inner := filter["title"].(bson.M)
		regex := inner["$regex"].(primitive.Regex)
		assert.Equal(t, want, regex.Pattern, query)

		// The quoted pattern must itself be a valid expression that
		// matches the literal query.
		re, err := regexp.Compile("(?i)" + regex.Pattern)
		require.NoError(t, err, query)
		assert.True(t, re.MatchString("prefix "+query+" suffix"), query)
		assert.False(t, re.MatchString("unrelated"), query)
	}
}

func TestTitleRegexEmptyQueryMatchesAll(t *testing.T) {
	filter := titleRegex("name", "")
	inner := filter["name"].(bson.M)
	regex := inner["$regex"].(primitive.Regex)
	assert.Empty(t, regex.Pattern)
}
