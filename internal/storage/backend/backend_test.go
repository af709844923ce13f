package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/config"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), &config.Config{Backend: config.BackendMemory})

	require.NoError(t, err)
	assert.NotNil(t, s.Transactions)
	assert.NotNil(t, s.Accounts)
	assert.NotNil(t, s.Goals)
	assert.NoError(t, s.Close())
}

func TestOpen_Unknown(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Backend: "sqlite"})

	assert.ErrorContains(t, err, "sqlite")
}
