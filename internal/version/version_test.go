package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "three components", input: "1.2.3"},
		{name: "two components", input: "10.0"},
		{name: "single component", input: "7"},
		{name: "large components", input: "10.20.30"},
		{name: "four components", input: "1.2.3.4"},
		{name: "zero", input: "0.0.0"},
		{name: "empty", input: "", wantErr: true},
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "leading v", input: "v1.2.3", wantErr: true},
		{name: "pre-release suffix", input: "1.2.3-rc1", wantErr: true},
		{name: "empty component", input: "1..3", wantErr: true},
		{name: "trailing dot", input: "1.2.", wantErr: true},
		{name: "negative component", input: "1.-2.3", wantErr: true},
		{name: "leading zero component", input: "1.02.3", wantErr: true},
		{name: "whitespace", input: " 1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorContains(t, err, "invalid version")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.input, v.String())
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "major wins", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "minor wins", a: "1.3.0", b: "1.2.9", want: 1},
		{name: "patch wins", a: "1.2.9", b: "1.2.8", want: 1},
		{name: "numeric not lexicographic", a: "10.0.0", b: "9.0.0", want: 1},
		{name: "two-digit minor", a: "1.10", b: "1.9", want: 1},
		{name: "short equals padded", a: "1.2", b: "1.2.0", want: 0},
		{name: "short below patched", a: "1.2", b: "1.2.1", want: -1},
		{name: "fourth component breaks tie", a: "1.2.3.1", b: "1.2.3", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.a)
			require.NoError(t, err)
			b, err := Parse(tt.b)
			require.NoError(t, err)

			require.Equal(t, tt.want, a.Compare(b))
			require.Equal(t, -tt.want, b.Compare(a))
		})
	}
}
