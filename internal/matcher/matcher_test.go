package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sheetdiff/internal/matcher"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType matcher.PatternType
		opts        *matcher.Options
		wantType    matcher.PatternType
		wantErr     bool
	}{
		{"valid glob pattern", "Coco*", matcher.Glob, nil, matcher.Glob, false},
		{"invalid glob pattern", "[unclosed", matcher.Glob, nil, matcher.Glob, true},
		{"valid regex pattern", "^Pizza.*", matcher.Regex, nil, matcher.Regex, false},
		{"invalid regex pattern", "(unclosed", matcher.Regex, nil, matcher.Regex, true},
		{"auto detects glob", "Price (USD)", matcher.Auto, nil, matcher.Glob, false},
		{"auto detects slashed regex", "/^a$/", matcher.Auto, nil, matcher.Regex, false},
		{"case insensitive", "noel", matcher.Glob, &matcher.Options{CaseInsensitive: true}, matcher.Glob, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := matcher.New(tt.patternType, tt.pattern, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pt      matcher.PatternType
		pattern string
		opts    *matcher.Options
		input   string
		want    bool
	}{
		{"glob star", matcher.Glob, "Coco*", nil, "Coco Copo Opa Noel", true},
		{"glob no match", matcher.Glob, "Coco*", nil, "Pizza", false},
		{"glob exact name with spaces", matcher.Glob, "Elastic Daytona", nil, "Elastic Daytona", true},
		{"glob question", matcher.Glob, "Pizz?", nil, "Pizza", true},
		{"glob case sensitive", matcher.Glob, "pizza", nil, "Pizza", false},
		{"glob case insensitive", matcher.Glob, "pizza", &matcher.Options{CaseInsensitive: true}, "Pizza", true},
		{"regex", matcher.Regex, "Daytona$", nil, "Sun Daytona", true},
		{"regex anchored", matcher.Regex, "Daytona", &matcher.Options{Anchored: true}, "Sun Daytona", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := matcher.New(tt.pt, tt.pattern, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestMatchAll(t *testing.T) {
	m, err := matcher.New(matcher.Glob, "*Daytona")
	require.NoError(t, err)
	assert.Equal(t, []string{"Daytona", "Sun Daytona"}, m.MatchAll("Daytona", "Pizza", "Sun Daytona"))
	assert.Empty(t, m.MatchAll("Noel"))
}

func TestSet(t *testing.T) {
	s, err := matcher.NewSet("Pizza*", "/^Fun /")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Match("Pizza No Thing"))
	assert.True(t, s.Match("Fun Coco Elastic"))
	assert.False(t, s.Match("Noel"))

	_, err = matcher.NewSet("[bad")
	assert.Error(t, err)

	var empty *matcher.Set
	assert.False(t, empty.Match("anything"))
	assert.Zero(t, empty.Len())
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "glob", matcher.Glob.String())
	assert.Equal(t, "regex", matcher.Regex.String())
	assert.Equal(t, "auto", matcher.Auto.String())
}
