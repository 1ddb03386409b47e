package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/coindash/market-data/coingecko"
)

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(server.URL, "http://", "ws://", 1)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var message wsMessage
	require.NoError(t, conn.ReadJSON(&message))
	return message
}

func TestWebsocket_InitialSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiServer, mockClient := newTestServer(t, ctrl)

	mockClient.EXPECT().
		ListTopCoins(gomock.Any(), gomock.Any()).
		Return([]coingecko.CoinSummary{{ID: "bitcoin"}}, nil).
		AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	apiServer.hub.start(ctx)
	defer apiServer.hub.stop()

	server := httptest.NewServer(http.HandlerFunc(apiServer.hub.handleWS))
	defer server.Close()

	conn := dialWS(t, server)
	message := readMessage(t, conn)
	assert.Equal(t, "top_coins", message.Type)

	coins, ok := message.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, coins, 1)
}

func TestWebsocket_PushOnRefreshEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	apiServer, mockClient := newTestServer(t, ctrl)

	mockClient.EXPECT().
		ListTopCoins(gomock.Any(), gomock.Any()).
		Return([]coingecko.CoinSummary{{ID: "bitcoin"}}, nil).
		AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	apiServer.hub.start(ctx)
	defer apiServer.hub.stop()

	server := httptest.NewServer(http.HandlerFunc(apiServer.hub.handleWS))
	defer server.Close()

	conn := dialWS(t, server)
	readMessage(t, conn)

	apiServer.hub.broadcastTopCoins()
	message := readMessage(t, conn)
	assert.Equal(t, "top_coins", message.Type)
}
