package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgsim/mtgsim/internal/game"
)

func TestSessionWS_StreamsViews(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	handler := srv.Handler()
	view := createSession(t, handler)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/sessions/" + view.SessionID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Initial view arrives immediately on connect.
	var initial game.SessionView
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, view.SessionID, initial.SessionID)
	assert.Equal(t, "beginning", initial.Phase)

	// A state change pushes a fresh view.
	response := doJSON(t, handler, http.MethodPost,
		"/api/sessions/"+view.SessionID+"/actions", actionRequest{Type: "endTurn"})
	require.Equal(t, http.StatusOK, response.Code)

	var updated game.SessionView
	require.NoError(t, conn.ReadJSON(&updated))
	assert.Equal(t, "opponent", updated.ActivePlayer)
	assert.Equal(t, "main1", updated.Phase)
}

func TestSessionWS_UnknownSession(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/sessions/nope/ws"
	_, response, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, response)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}
