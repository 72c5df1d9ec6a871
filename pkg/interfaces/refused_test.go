package interfaces_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-commontransport/pkg/interfaces"
	ma "github.com/dep2p/go-commontransport/pkg/lib/multiaddr"
	"github.com/dep2p/go-commontransport/tests/mocks"
)

func TestRefuse(t *testing.T) {
	tr := mocks.NewMockTransport()
	addr := ma.StringCast("/ip4/127.0.0.1/tcp/4001/http")

	err := interfaces.Refuse(tr, addr)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedAddress)
	assert.Contains(t, err.Error(), "/ip4/127.0.0.1/tcp/4001/http")

	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.Same(t, tr, refused.Transport)
	assert.True(t, refused.Addr.Equal(addr))

	t.Log("✅ Refuse 携带传输与地址")
}

func TestAsRefused_Wrapped(t *testing.T) {
	tr := mocks.NewMockTransport()
	err := fmt.Errorf("dial: %w", interfaces.Refuse(tr, nil))

	refused, ok := interfaces.AsRefused(err)
	require.True(t, ok)
	assert.Same(t, tr, refused.Transport)
	assert.Equal(t, interfaces.ErrUnsupportedAddress.Error(), refused.Error())
}

func TestAsRefused_OtherError(t *testing.T) {
	_, ok := interfaces.AsRefused(errors.New("bind: address already in use"))
	assert.False(t, ok)

	_, ok = interfaces.AsRefused(nil)
	assert.False(t, ok)
}
