package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/csvto/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/csvto/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/csvto/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/csvto/pkg/adapters/sqlite"
)

func TestSelfRegistration(t *testing.T) {
	for _, name := range []string{"sqlite", "postgres", "mysql", "duckdb"} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, adapter.IsRegistered(name), "%s adapter should be auto-registered", name)

			_, ok := dialect.Get(name)
			assert.True(t, ok, "%s dialect should be auto-registered", name)
		})
	}
}

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name        string
		adapterName string
		expected    bool
	}{
		{"sqlite registered", "sqlite", true},
		{"postgres registered", "postgres", true},
		{"unknown not registered", "unknown_db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.IsRegistered(tt.adapterName)
			assert.Equal(t, tt.expected, got, "IsRegistered(%q)", tt.adapterName)
		})
	}
}

func TestNewAdapter_Success(t *testing.T) {
	cfg := core.AdapterConfig{
		Type: "sqlite",
		Path: ":memory:",
	}

	adp, err := adapter.NewAdapter(cfg, nil)
	require.NoError(t, err, "NewAdapter(sqlite) failed")
	require.NotNil(t, adp, "NewAdapter(sqlite) returned nil adapter")
	assert.Equal(t, "sqlite", adp.Dialect().Name)
}

func TestNewAdapter_UnknownTypeListsBackends(t *testing.T) {
	_, err := adapter.NewAdapter(core.AdapterConfig{Type: "unknown_adapter"}, nil)
	require.Error(t, err, "NewAdapter(unknown_adapter) should fail")

	var unknownErr *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Subset(t, unknownErr.Available, []string{"duckdb", "mysql", "postgres", "sqlite"})
}
