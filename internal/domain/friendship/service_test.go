package friendship

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[PairKey]*Friendship

	saveErr   error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[PairKey]*Friendship{}}
}

func (r *fakeRepo) Get(ctx context.Context, key PairKey) (*Friendship, error) {
	if f, ok := r.items[key]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeRepo) Exists(ctx context.Context, key PairKey) (bool, error) {
	_, ok := r.items[key]
	return ok, nil
}

func (r *fakeRepo) Save(ctx context.Context, f *Friendship) (*Friendship, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if _, ok := r.items[f.PairKey]; ok {
		return nil, ErrAlreadyExists
	}
	for _, existing := range r.items {
		if existing.ChatID == f.ChatID {
			return nil, ErrChatInUse
		}
	}
	saved := *f
	saved.CreatedAt = time.Now()
	r.items[f.PairKey] = &saved
	return &saved, nil
}

func (r *fakeRepo) Delete(ctx context.Context, key PairKey) (bool, error) {
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

func (r *fakeRepo) ListForUser(ctx context.Context, userID int64) ([]*Friendship, error) {
	var out []*Friendship
	for _, f := range r.items {
		if f.Contains(userID) {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateBlockFlags(ctx context.Context, f *Friendship) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	existing, ok := r.items[f.PairKey]
	if !ok {
		return ErrNotFound
	}
	existing.BlockedByLow = f.BlockedByLow
	existing.BlockedByHigh = f.BlockedByHigh
	return nil
}

type fakeChecker struct {
	missingUsers map[int64]bool
	missingChats map[int64]bool
}

func (c *fakeChecker) UserExists(ctx context.Context, userID int64) bool {
	return !c.missingUsers[userID]
}

func (c *fakeChecker) ChatExists(ctx context.Context, chatID int64) bool {
	return !c.missingChats[chatID]
}

func TestCreateFriendship(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeChecker{})

	f, err := service.Create(context.Background(), 9, 5, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.UserIDLow != 5 || f.UserIDHigh != 9 || f.ChatID != 100 {
		t.Fatalf("unexpected friendship: %+v", f)
	}
	if f.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be assigned on save")
	}

	if _, err := service.Create(context.Background(), 5, 9, 200); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for the same pair, got %v", err)
	}
	if _, err := service.Create(context.Background(), 5, 6, 100); !errors.Is(err, ErrChatInUse) {
		t.Fatalf("expected ErrChatInUse for a reused chat, got %v", err)
	}
}

func TestCreateFriendshipRequiresConfirmedEntities(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeChecker{missingUsers: map[int64]bool{9: true}})

	if _, err := service.Create(context.Background(), 5, 9, 100); !errors.Is(err, ErrUserMissing) {
		t.Fatalf("expected ErrUserMissing, got %v", err)
	}

	service = NewService(repo, &fakeChecker{missingChats: map[int64]bool{100: true}})
	if _, err := service.Create(context.Background(), 5, 9, 100); !errors.Is(err, ErrChatMissing) {
		t.Fatalf("expected ErrChatMissing, got %v", err)
	}

	if len(repo.items) != 0 {
		t.Fatal("expected no friendship to be saved when validation fails")
	}
}

func TestToggleBlockFlipsViewerSide(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeChecker{})

	if _, err := service.Create(context.Background(), 5, 9, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := service.ToggleBlock(context.Background(), 5, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.FriendID != 5 {
		t.Fatalf("expected the view from the blocker's side, got friend %d", view.FriendID)
	}
	if !view.BlockedByViewer || view.BlockedByFriend {
		t.Fatalf("expected blocked_by_viewer after first toggle, got %+v", view)
	}

	key, _ := NewPairKey(5, 9)
	stored := repo.items[key]
	if stored.BlockedByLow || !stored.BlockedByHigh {
		t.Fatalf("expected only the high side flag set, got %+v", stored)
	}

	view, err = service.ToggleBlock(context.Background(), 5, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.BlockedByViewer {
		t.Fatal("expected second toggle to unblock")
	}
}

func TestToggleBlockWithoutFriendship(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeChecker{})

	if _, err := service.ToggleBlock(context.Background(), 5, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// A caller with no friendship to the other party gets the same answer:
	// the pair (5,42) simply has no record.
	if _, err := service.Create(context.Background(), 5, 9, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.ToggleBlock(context.Background(), 5, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a non-party blocker, got %v", err)
	}
}

func TestMutualFriendsCount(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeChecker{})

	// 1 and 2 share friends 10 and 11; 12 is only 1's friend.
	pairs := [][2]int64{{1, 10}, {1, 11}, {1, 12}, {2, 10}, {2, 11}}
	chatID := int64(100)
	for _, p := range pairs {
		if _, err := service.Create(context.Background(), p[0], p[1], chatID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		chatID++
	}

	count, err := service.MutualFriendsCount(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 mutual friends, got %d", count)
	}

	count, err = service.MutualFriendsCount(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 mutual friends, got %d", count)
	}
}

func TestUnfriend(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeChecker{})

	if _, err := service.Create(context.Background(), 5, 9, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.Unfriend(context.Background(), 9, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.Unfriend(context.Background(), 5, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second unfriend, got %v", err)
	}
}
