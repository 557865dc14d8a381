package executor_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/property-registry/internal/api/shared/dto"
	"github.com/feral-file/property-registry/internal/api/shared/executor"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/mocks"
	"github.com/feral-file/property-registry/internal/registry"
)

const (
	registrar = domain.Identity("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	alice     = domain.Identity("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob       = domain.Identity("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

// Mutation responses are built from the committed record. Any follow-up read
// (OwnerOf, GetPropertyDetails) is an unexpected call and fails the test, since
// such a read may be served by a replica that has not caught up yet.

func TestTransferProperty_RespondsWithCommittedOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	exec := executor.NewExecutor(reg, mocks.NewMockStore(ctrl))

	reg.EXPECT().
		TransferProperty(gomock.Any(), alice, alice, bob, domain.TokenID(4)).
		Return(&domain.Property{
			TokenID:          4,
			CurrentOwner:     bob,
			OwnershipHistory: []domain.Identity{alice, bob},
		}, nil)

	resp, err := exec.TransferProperty(context.Background(), alice, "", bob.String(), 4)
	require.NoError(t, err)
	assert.Equal(t, &dto.OwnerResponse{TokenID: 4, Owner: bob.String()}, resp)
}

func TestTransferProperty_PassesRegistryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	exec := executor.NewExecutor(reg, mocks.NewMockStore(ctrl))

	reg.EXPECT().
		TransferProperty(gomock.Any(), alice, alice, bob, domain.TokenID(4)).
		Return(nil, domain.ErrOwnerMismatch)

	resp, err := exec.TransferProperty(context.Background(), alice, alice.String(), bob.String(), 4)
	assert.ErrorIs(t, err, domain.ErrOwnerMismatch)
	assert.Nil(t, resp)
}

func TestRegisterProperty_RespondsWithCommittedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	exec := executor.NewExecutor(reg, mocks.NewMockStore(ctrl))

	req := dto.RegisterPropertyRequest{
		Recipient:    alice.String(),
		Description:  "Two bedroom apartment",
		Location:     "12 Harbour Street",
		MediaHash:    "QmMedia",
		DocumentHash: "QmDoc",
	}
	reg.EXPECT().
		RegisterProperty(gomock.Any(), registrar, registry.RegisterInput{
			Recipient:    alice,
			Description:  req.Description,
			Location:     req.Location,
			MediaHash:    req.MediaHash,
			DocumentHash: req.DocumentHash,
		}).
		Return(&domain.Property{
			TokenID: 7,
			Info: domain.PropertyInfo{
				Description:  req.Description,
				Location:     req.Location,
				MediaHash:    req.MediaHash,
				DocumentHash: req.DocumentHash,
			},
			CurrentOwner:     alice,
			OwnershipHistory: []domain.Identity{alice},
		}, nil)

	resp, err := exec.RegisterProperty(context.Background(), registrar, req)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), resp.TokenID)
	assert.Equal(t, alice.String(), resp.CurrentOwner)
	assert.Equal(t, "12 Harbour Street", resp.Location)
}

func TestTransferRegistrar_RespondsWithNewRegistrar(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockRegistry(ctrl)
	exec := executor.NewExecutor(reg, mocks.NewMockStore(ctrl))

	gomock.InOrder(
		reg.EXPECT().TransferRegistrar(gomock.Any(), registrar, domain.Identity("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")).Return(nil),
		// A lagging read still reports the previous registrar
		reg.EXPECT().Info(gomock.Any()).Return(&domain.RegistryInfo{
			Name:        domain.DEFAULT_REGISTRY_NAME,
			Symbol:      domain.DEFAULT_REGISTRY_SYMBOL,
			Registrar:   registrar,
			TotalSupply: 3,
		}, nil),
	)

	resp, err := exec.TransferRegistrar(context.Background(), registrar, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	require.NoError(t, err)
	assert.Equal(t, alice.String(), resp.Registrar)
	assert.Equal(t, uint64(3), resp.TotalSupply)
}
