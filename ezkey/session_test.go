package ezkey

import (
	"context"
	"testing"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	f := newFixture()

	s, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	defer s.Close()

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, testUser, s.Address())
	assert.Nil(t, s.Snapshot())
}

func TestConnectRejected(t *testing.T) {
	f := newFixture()
	f.provider.ConnErr = &client.ProviderError{Code: client.CodeUserRejected, Message: "User rejected the request."}

	_, err := f.wallet.Connect(context.Background())
	assert.EqualError(t, err, "failed to connect wallet: User rejected the request.")
	assert.Equal(t, KindUserRejected, KindOf(err))
}

func TestConnectNoAccounts(t *testing.T) {
	f := newFixture()
	f.provider.Accounts = nil

	_, err := f.wallet.Connect(context.Background())
	assert.True(t, IsActionError(err, KindNoWallet))
}

func TestRefreshOnWrongNetwork(t *testing.T) {
	f := newFixture()
	s, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.Snapshot())

	f.provider.Chain = client.ChainIDEthereum
	_, err = s.Refresh(context.Background())
	assert.True(t, IsWrongNetworkError(err))
	// the previous snapshot stays until a refresh succeeds
	assert.NotNil(t, s.Snapshot())

	status, err := s.SwitchNetwork(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Correct)
	_, err = s.Refresh(context.Background())
	assert.NoError(t, err)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	f := newFixture()
	s, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)

	s.Close()
	s.Close()
	assert.Nil(t, s.Snapshot())

	_, err = s.Refresh(context.Background())
	assert.ErrorIs(t, err, errSessionClosed)
}

func TestProbe(t *testing.T) {
	f := newFixture()
	f.holder("2", "3")
	s, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	defer s.Close()

	resp, err := s.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testUser.Hex(), resp.Address)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "2.0", resp.Results[0].EzPol)
	assert.Equal(t, "3.0", resp.Results[0].EzSushi)
}

func TestRegistry(t *testing.T) {
	f := newFixture()
	r := NewRegistry()

	a, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	b, err := f.wallet.Connect(context.Background())
	require.NoError(t, err)
	r.Add(a)
	r.Add(b)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, r.Remove(a.ID()))
	assert.False(t, r.Remove(a.ID()))
	assert.True(t, a.closed.Load())

	r.CloseAll()
	assert.Zero(t, r.Len())
	assert.True(t, b.closed.Load())
}
