package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	host := mcpServeCmd.Flags().Lookup("host")
	require.NotNil(t, host)
	assert.Equal(t, "127.0.0.1", host.DefValue)

	port := mcpServeCmd.Flags().ShorthandLookup("p")
	require.NotNil(t, port)
	assert.Equal(t, "port", port.Name)
	assert.Equal(t, "0", port.DefValue)
}

func TestMCPServeCmd_NoServices(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, nil, "mcp", "serve")
	require.ErrorIs(t, err, mcp.ErrMissingCleaningService)
}
