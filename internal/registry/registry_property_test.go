package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/registry"
	"github.com/feral-file/property-registry/internal/store"
)

// TestRegistry_Invariants drives random register/transfer sequences against a model
// of expected histories and checks the registry invariants after every step.
func TestRegistry_Invariants(t *testing.T) {
	identities := []domain.Identity{addr1, addr2, addr3, "alice", "bob"}

	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		reg := registry.New(store.NewMemoryStore(), adapter.NewClock(), registry.Config{})
		_, err := reg.Initialize(ctx, registrar)
		require.NoError(rt, err)

		model := map[domain.TokenID][]domain.Identity{}
		var next domain.TokenID
		var journal uint64

		rt.Repeat(map[string]func(*rapid.T){
			"register": func(rt *rapid.T) {
				to := rapid.SampledFrom(identities).Draw(rt, "to")
				tokenID, err := reg.Register(ctx, registrar, registry.RegisterInput{Recipient: to})
				require.NoError(rt, err)
				require.Equal(rt, next, tokenID, "identifiers are dense and sequential")

				model[tokenID] = []domain.Identity{to}
				next++
				journal++
			},
			"register unauthorized": func(rt *rapid.T) {
				caller := rapid.SampledFrom(identities).Draw(rt, "caller")
				_, err := reg.Register(ctx, caller, registry.RegisterInput{Recipient: addr1})
				require.ErrorIs(rt, err, domain.ErrUnauthorized)
			},
			"transfer": func(rt *rapid.T) {
				if next == 0 {
					rt.Skip("no tokens registered")
				}
				tokenID := domain.TokenID(rapid.Uint64Range(0, uint64(next)-1).Draw(rt, "tokenID"))
				from := rapid.SampledFrom(identities).Draw(rt, "from")
				to := rapid.SampledFrom(identities).Draw(rt, "to")

				err := reg.Transfer(ctx, from, from, to, tokenID)

				history := model[tokenID]
				switch {
				case to == from:
					require.ErrorIs(rt, err, domain.ErrInvalidRecipient)
				case history[len(history)-1] != from:
					require.ErrorIs(rt, err, domain.ErrOwnerMismatch)
				default:
					require.NoError(rt, err)
					model[tokenID] = append(history, to)
					journal++
				}
			},
			"transfer unknown token": func(rt *rapid.T) {
				offset := rapid.Uint64Range(0, 10).Draw(rt, "offset")
				err := reg.Transfer(ctx, addr1, addr1, addr2, next+domain.TokenID(offset))
				require.ErrorIs(rt, err, domain.ErrTokenNotFound)
			},
			"": func(rt *rapid.T) {
				supply, err := reg.TotalSupply(ctx)
				require.NoError(rt, err)
				require.Equal(rt, uint64(next), supply)

				for tokenID, expected := range model {
					history, err := reg.GetOwnershipHistory(ctx, tokenID)
					require.NoError(rt, err)
					require.Equal(rt, expected, history)

					owner, err := reg.OwnerOf(ctx, tokenID)
					require.NoError(rt, err)
					require.Equal(rt, history[len(history)-1], owner)
				}

				events, err := reg.Changes(ctx, registry.ChangesQuery{})
				require.NoError(rt, err)
				require.Len(rt, events, int(journal)) //nolint:gosec,G115
				for i, e := range events {
					require.Equal(rt, uint64(i+1), e.ID) //nolint:gosec,G115
				}
			},
		})
	})
}
