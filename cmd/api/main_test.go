package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/friendcircle/friendship-api/internal/pkg/chatclient"
	"github.com/friendcircle/friendship-api/internal/pkg/existscache"
)

func TestChatServiceAdapter(t *testing.T) {
	var deleted bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/chats":
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, "100")
		case r.Method == http.MethodDelete && r.URL.Path == "/api/chats/100":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := chatclient.New(server.URL, time.Second, 0, time.Millisecond)
	cache := existscache.New(nil, "exists:chat", time.Minute, client.Exists)
	adapter := &chatServiceAdapter{client: client, cache: cache}

	chatID, err := adapter.CreateChat(context.Background(), "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chatID != 100 {
		t.Fatalf("expected chat 100, got %d", chatID)
	}

	if err := adapter.DeleteChat(context.Background(), 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected the delete to reach the chat service")
	}
}
