package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prefacturation_service/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func startHub(t *testing.T, origins []string) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(origins)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/v1/ws", hub.ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsEvents(t *testing.T) {
	hub, srv := startHub(t, []string{"*"})
	all := dial(t, srv, "")
	filtered := dial(t, srv, "?prefacturation_id=pf-2")
	waitForClients(t, hub, 2)

	hub.Publish(entities.PrefacturationEvent{
		PrefacturationID: "pf-1",
		Action:           "validate",
		Status:           entities.PrefacturationStatusValidated,
		Version:          4,
	})
	hub.Publish(entities.PrefacturationEvent{PrefacturationID: "pf-2", Action: "unblock"})

	_ = all.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := all.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got entities.PrefacturationEvent
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PrefacturationID != "pf-1" || got.Status != entities.PrefacturationStatusValidated || got.Version != 4 {
		t.Fatalf("unexpected event: %+v", got)
	}

	_ = filtered.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err = filtered.ReadMessage()
	if err != nil {
		t.Fatalf("read filtered: %v", err)
	}
	if err := json.Unmarshal(msg, &got); err != nil || got.PrefacturationID != "pf-2" {
		t.Fatalf("filtered client should only see pf-2, got %+v err=%v", got, err)
	}
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	_, srv := startHub(t, []string{"https://carrier.example.com"})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws"

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}
