package issuer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintTicket(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	issuerID, err := svc.Register(ctx, "BlockPassNFT", "BPNT")
	require.NoError(t, err)

	tokenID, err := svc.MintTicket(ctx, issuerID, "alice", "https://example.com/nft/1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tokenID)

	owner, ok, err := svc.OwnerOf(ctx, issuerID, tokenID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", owner)

	uri, ok, err := svc.TokenURI(ctx, issuerID, tokenID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/nft/1", uri)
}

func TestMintTicket_SequentialIDs(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	issuerID, err := svc.Register(ctx, "BlockPassNFT", "BPNT")
	require.NoError(t, err)

	for want := uint64(1); want <= 5; want++ {
		tokenID, err := svc.MintTicket(ctx, issuerID, "alice", "uri")
		require.NoError(t, err)
		assert.Equal(t, want, tokenID)
	}
}

func TestMintTicket_IndependentIDSpaces(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	first, err := svc.Register(ctx, "First", "FST")
	require.NoError(t, err)
	second, err := svc.Register(ctx, "Second", "SND")
	require.NoError(t, err)

	tokenID, err := svc.MintTicket(ctx, first, "alice", "uri")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tokenID)

	// A fresh issuer starts its own token space at 1.
	tokenID, err = svc.MintTicket(ctx, second, "bob", "uri")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tokenID)
}

func TestMintTicket_UnknownIssuer(t *testing.T) {
	svc := NewService(NewMemoryStore())

	_, err := svc.MintTicket(context.Background(), 42, "alice", "uri")
	assert.Equal(t, ErrIssuerNotFound, err)
}

func TestReads_UnknownToken(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	issuerID, err := svc.Register(ctx, "BlockPassNFT", "BPNT")
	require.NoError(t, err)

	_, ok, err := svc.OwnerOf(ctx, issuerID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.TokenURI(ctx, issuerID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
