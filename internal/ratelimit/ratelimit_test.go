package ratelimit

import (
	"testing"
	"time"
)

func TestAnonymousOffAllowsUpToCapThenDenies(t *testing.T) {
	l := New()
	for i := 0; i < anonymousOffCap; i++ {
		res := l.Check(AnonymousOff, "")
		if !res.Allowed {
			t.Fatalf("request %d unexpectedly denied", i)
		}
	}
	res := l.Check(AnonymousOff, "")
	if res.Allowed {
		t.Fatal("request beyond cap should be denied")
	}
	if res.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0 once denied", res.Remaining)
	}
	if res.Limit != anonymousOffCap {
		t.Errorf("Limit = %d, want %d", res.Limit, anonymousOffCap)
	}
}

func TestAnonymousOnHasTighterCap(t *testing.T) {
	l := New()
	for i := 0; i < anonymousOnCap; i++ {
		if res := l.Check(AnonymousOn, ""); !res.Allowed {
			t.Fatalf("request %d unexpectedly denied", i)
		}
	}
	if res := l.Check(AnonymousOn, ""); res.Allowed {
		t.Fatal("request beyond anonymous-on cap should be denied")
	}
}

func TestAuthenticatedTierIsPerIdentity(t *testing.T) {
	l := New()
	for i := 0; i < authenticatedCap; i++ {
		if res := l.Check(Authenticated, "session-a"); !res.Allowed {
			t.Fatalf("session-a request %d unexpectedly denied", i)
		}
	}
	if res := l.Check(Authenticated, "session-a"); res.Allowed {
		t.Fatal("session-a should be exhausted")
	}
	if res := l.Check(Authenticated, "session-b"); !res.Allowed {
		t.Fatal("session-b has its own bucket and should be allowed")
	}
}

func TestWindowResetsAfterExpiry(t *testing.T) {
	w := newWindow(1, 10*time.Millisecond)
	now := time.Now()

	res := w.check(now)
	if !res.Allowed {
		t.Fatal("first request should be allowed")
	}
	res = w.check(now)
	if res.Allowed {
		t.Fatal("second immediate request should be denied")
	}

	res = w.check(now.Add(20 * time.Millisecond))
	if !res.Allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestResultReportsConsistentResetAt(t *testing.T) {
	l := New()
	res := l.Check(AnonymousOff, "")
	if !res.ResetAt.After(time.Now()) {
		t.Error("ResetAt should be in the future immediately after a fresh window")
	}
}
