package registry

import "testing"

func TestSeenAndMarkVisited(t *testing.T) {
	r := New()
	if r.Seen("host", 70, "/a") {
		t.Fatal("expected unseen reference to report unseen")
	}
	r.MarkVisited("host", 70, "/a")
	if !r.Seen("host", 70, "/a") {
		t.Fatal("expected marked reference to report seen")
	}
	if r.Seen("host", 70, "/b") {
		t.Fatal("a different selector on the same host:port must not be seen")
	}
	if r.Seen("other", 70, "/a") {
		t.Fatal("a different host must not be seen")
	}
	if r.Seen("host", 71, "/a") {
		t.Fatal("a different port must not be seen")
	}
}

func TestSeen_CaseSensitiveByteExact(t *testing.T) {
	r := New()
	r.MarkVisited("Host", 70, "/A")
	if r.Seen("host", 70, "/A") {
		t.Fatal("host comparison must be case-sensitive")
	}
	if r.Seen("Host", 70, "/a") {
		t.Fatal("selector comparison must be case-sensitive")
	}
}

func TestRecordInvalid_PreservesInsertionOrder(t *testing.T) {
	r := New()
	r.RecordInvalid("host:70: /a", "timeout")
	r.RecordInvalid("host:70: /b", "missing terminator")

	got := r.InvalidRefs()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Display != "host:70: /a" || got[1].Display != "host:70: /b" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
