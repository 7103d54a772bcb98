package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
)

func TestEventStream_ReceivesJobEvents(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/jobs"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.Subscribers() == 1 }, 2*time.Second, 5*time.Millisecond)

	env.hub.Publish(model.JobEvent{Type: model.JobEventSucceeded, JobID: "job-1", IP: "10.0.0.21"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt model.JobEvent
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, model.JobEventSucceeded, evt.Type)
	assert.Equal(t, "job-1", evt.JobID)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return env.hub.Subscribers() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestEventStream_HubCloseEndsStream(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/jobs"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.Subscribers() == 1 }, 2*time.Second, 5*time.Millisecond)
	env.hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
