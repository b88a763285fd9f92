package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"nil", nil, ""},
		{"empty", []string{}, ""},
		{"single", []string{"a"}, "a"},
		{"several", []string{"a", "b", "c"}, "a,b,c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EncodeList(tt.in))
		})
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty string is empty list", "", []string{}},
		{"single", "a", []string{"a"}},
		{"several", "a,b,c", []string{"a", "b", "c"}},
		{"keeps empty inner entries", "a,,b", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeList(tt.in)
			require.NotNil(t, got)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestListCodec_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entry := rapid.StringMatching(`[^,]{1,20}`)
		list := rapid.SliceOf(entry).Draw(t, "list")

		got := DecodeList(EncodeList(list))
		if len(got) != len(list) {
			t.Fatalf("round trip length = %d, want %d (%q)", len(got), len(list), list)
		}
		for i := range list {
			if got[i] != list[i] {
				t.Fatalf("round trip [%d] = %q, want %q", i, got[i], list[i])
			}
		}
	})
}
