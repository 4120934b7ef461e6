package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollUntilSatisfied(t *testing.T) {
	calls := 0
	done, err := pollUntil(context.Background(), time.Now().Add(time.Second), time.Millisecond, func() (bool, error) {
		calls++
		return calls >= 3, nil
	})
	if err != nil || !done {
		t.Fatalf("done=%v err=%v", done, err)
	}
	if calls != 3 {
		t.Fatalf("cond called %d times, want 3", calls)
	}
}

func TestPollUntilDeadline(t *testing.T) {
	done, err := pollUntil(context.Background(), time.Now().Add(20*time.Millisecond), 5*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done {
		t.Fatalf("cond never true but done reported")
	}
}

func TestPollUntilPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := pollUntil(context.Background(), time.Now().Add(time.Second), time.Millisecond, func() (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error lost: %v", err)
	}
}

func TestPollUntilContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pollUntil(ctx, time.Now().Add(time.Second), 10*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
