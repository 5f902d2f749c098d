package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testParams struct {
	Timeout int               `mapstructure:"timeout"`
	Mode    string            `mapstructure:"mode"`
	Extra   map[string]string `mapstructure:"extra"`
	Wait    time.Duration     `mapstructure:"wait"`
}

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    testParams
		wantErr bool
	}{
		{name: "nil params", input: nil, want: testParams{}},
		{
			name:  "typed values",
			input: map[string]any{"timeout": 5000, "mode": "wal"},
			want:  testParams{Timeout: 5000, Mode: "wal"},
		},
		{
			name:  "weakly typed string number",
			input: map[string]any{"timeout": "250"},
			want:  testParams{Timeout: 250},
		},
		{
			name:  "nested map",
			input: map[string]any{"extra": map[string]any{"charset": "utf8mb4"}},
			want:  testParams{Extra: map[string]string{"charset": "utf8mb4"}},
		},
		{
			name:  "duration string",
			input: map[string]any{"wait": "1m30s"},
			want:  testParams{Wait: 90 * time.Second},
		},
		{name: "unknown key", input: map[string]any{"bogus": true}, wantErr: true},
		{name: "wrong type", input: map[string]any{"timeout": "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testParams
			err := DecodeParams(tt.input, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
