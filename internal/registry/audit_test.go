package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/registry"
)

func TestAuditListener_LogsCommittedChanges(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)

	env := newTestEnv(t)
	env.registry.Subscribe(registry.NewAuditListener(zap.New(core)))

	tokenID := registerHouse(t, env.registry, addr1)
	require.NoError(t, env.registry.Transfer(ctx, addr1, addr1, addr2, tokenID))

	entries := logs.FilterMessage("Registry change committed").All()
	require.Len(t, entries, 2)

	registered := entries[0].ContextMap()
	assert.Equal(t, uint64(1), registered["eventID"])
	assert.Equal(t, string(domain.EventTypePropertyRegistered), registered["eventType"])
	assert.Equal(t, addr1.String(), registered["to"])
	assert.Equal(t, uint64(tokenID), registered["tokenID"])
	assert.NotContains(t, registered, "from")

	transferred := entries[1].ContextMap()
	assert.Equal(t, uint64(2), transferred["eventID"])
	assert.Equal(t, string(domain.EventTypePropertyTransferred), transferred["eventType"])
	assert.Equal(t, addr1.String(), transferred["from"])
	assert.Equal(t, addr2.String(), transferred["to"])
}
