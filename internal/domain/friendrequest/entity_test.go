package friendrequest

import (
	"errors"
	"testing"
)

func TestNewRequestKeyKeepsDirection(t *testing.T) {
	forward, err := NewRequestKey(9, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, err := NewRequestKey(5, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if forward == backward {
		t.Fatal("expected (9,5) and (5,9) to be distinct keys")
	}
	if forward.SenderID != 9 || forward.ReceiverID != 5 {
		t.Fatalf("expected sender and receiver to stay in place, got %+v", forward)
	}
	if forward.Reversed() != backward {
		t.Fatalf("expected reversal of %+v to equal %+v", forward, backward)
	}
}

func TestNewRequestKeyRejectsInvalidIDs(t *testing.T) {
	cases := []struct {
		name             string
		sender, receiver int64
		want             error
	}{
		{"zero sender", 0, 7, ErrInvalidUserID},
		{"zero receiver", 7, 0, ErrInvalidUserID},
		{"negative sender", -1, 7, ErrInvalidUserID},
		{"self request", 7, 7, ErrSelfRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRequestKey(tc.sender, tc.receiver); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
