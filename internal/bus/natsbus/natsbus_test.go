package natsbus

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	srv := natsserver.RunRandClientPortServer()
	defer srv.Shutdown()

	sub, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	defer sub.Close()

	msgs := make(chan *nats.Msg, 1)
	_, err = sub.ChanSubscribe("prubot.test", msgs)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	b, err := Connect(srv.ClientURL(), "")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Publish(context.Background(), "prubot.test", []byte(`{"ok":true}`)))

	select {
	case m := <-msgs:
		assert.Equal(t, `{"ok":true}`, string(m.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestPublishCancelled(t *testing.T) {
	srv := natsserver.RunRandClientPortServer()
	defer srv.Shutdown()

	b, err := Connect(srv.ClientURL(), "prubot-test")
	require.NoError(t, err)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Publish(ctx, "prubot.test", nil), context.Canceled)
}

func TestConnectRequiresURL(t *testing.T) {
	_, err := Connect("", "")
	assert.Error(t, err)

	var b *Bus
	assert.Error(t, b.Publish(context.Background(), "x", nil))
	b.Close()
}
