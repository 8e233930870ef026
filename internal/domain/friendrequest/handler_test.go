package friendrequest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/friendcircle/friendship-api/internal/domain/friendship"
)

func passthroughAuth(next http.Handler) http.Handler {
	return next
}

func newTestRouter(service *Service) http.Handler {
	return NewHandler(service).Routes(passthroughAuth)
}

func TestSendHandler(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(newTestService(repo, &fakeFriendshipStore{}, &fakeChatCreator{}))

	body, _ := json.Marshal(SendRequest{SenderID: 9, ReceiverID: 5})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSendHandlerValidation(t *testing.T) {
	router := newTestRouter(newTestService(newFakeRepo(), &fakeFriendshipStore{}, &fakeChatCreator{}))

	body, _ := json.Marshal(SendRequest{SenderID: 7, ReceiverID: 7})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAcceptHandler(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, &fakeFriendshipStore{}, &fakeChatCreator{nextChatID: 100})
	router := newTestRouter(service)

	if _, err := service.Send(context.Background(), 9, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/accept?sender_id=9&receiver_id=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var out struct {
		Data friendship.Friendship `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Data.ChatID != 100 {
		t.Fatalf("expected friendship bound to chat 100, got %+v", out.Data)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/accept?sender_id=9&receiver_id=5", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on replayed accept, got %d", rr.Code)
	}
}

func TestAcceptHandlerChatFailure(t *testing.T) {
	repo := newFakeRepo()
	chats := &fakeChatCreator{err: context.DeadlineExceeded}
	service := newTestService(repo, &fakeFriendshipStore{}, chats)
	router := newTestRouter(service)

	if _, err := service.Send(context.Background(), 9, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/accept?sender_id=9&receiver_id=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", rr.Code, rr.Body.String())
	}
	if len(repo.items) != 1 {
		t.Fatal("expected the request to survive")
	}
}

func TestRejectHandler(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, &fakeFriendshipStore{}, &fakeChatCreator{})
	router := newTestRouter(service)

	if _, err := service.Send(context.Background(), 9, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/reject?sender_id=9&receiver_id=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/reject?sender_id=9&receiver_id=5", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on replayed reject, got %d", rr.Code)
	}
}

func TestExistsHandler(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, &fakeFriendshipStore{}, &fakeChatCreator{})
	router := newTestRouter(service)

	if _, err := service.Send(context.Background(), 9, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/exists?sender_id=9&receiver_id=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	// Direction matters.
	req = httptest.NewRequest(http.MethodGet, "/exists?sender_id=5&receiver_id=9", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for the reverse direction, got %d", rr.Code)
	}
}
