package keys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/sheetdiff/pkg/keys"
	"github.com/agentstation/sheetdiff/pkg/record"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  record.Value
		want keys.Key
	}{
		{
			name: "null identifier",
			raw:  record.Null(),
			want: keys.Key{},
		},
		{
			name: "blank identifier",
			raw:  record.String("   "),
			want: keys.Key{},
		},
		{
			name: "plain identifier",
			raw:  record.String(" AAAA "),
			want: keys.Key{Primary: "AAAA", Valid: true},
		},
		{
			name: "composite keeps leading zeros",
			raw:  record.String("AAAA_0001"),
			want: keys.Key{Primary: "AAAA", Secondary: "0001", HasSecondary: true, Separator: "_", Valid: true},
		},
		{
			name: "splits at first separator only",
			raw:  record.String("AAAA_0001_x"),
			want: keys.Key{Primary: "AAAA", Secondary: "0001_x", HasSecondary: true, Separator: "_", Valid: true},
		},
		{
			name: "empty primary part is kept",
			raw:  record.String("_001"),
			want: keys.Key{Primary: "", Secondary: "001", HasSecondary: true, Separator: "_", Valid: true},
		},
		{
			name: "numeric identifier",
			raw:  record.Number(42),
			want: keys.Key{Primary: "42", Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Split(tt.raw, "_"))
		})
	}
}

func TestSplitCustomSeparator(t *testing.T) {
	k := keys.Split(record.String("X-01_a"), "-")
	assert.Equal(t, "X", k.Primary)
	assert.Equal(t, "01_a", k.Secondary)
	assert.Equal(t, "X-01_a", k.String())
}

func TestSplitWithoutSeparator(t *testing.T) {
	k := keys.Split(record.String("X_1"), "")
	assert.Equal(t, keys.Key{Primary: "X_1", Valid: true}, k)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "", keys.Key{}.String())
	assert.Equal(t, "A", keys.Split(record.String("A"), "_").String())
	assert.Equal(t, "A_01", keys.Split(record.String("A_01"), "_").String())
	assert.Equal(t, "A::01", keys.Split(record.String(" A::01 "), "::").String())
}
