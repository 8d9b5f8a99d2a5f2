package report

import (
	"strings"
	"testing"

	"gopherindex/internal/crawl"
	"gopherindex/internal/registry"
	"gopherindex/internal/stats"
)

func TestRender_EmptyCrawl(t *testing.T) {
	state := &crawl.State{Stats: stats.New()}
	out := Render(state, nil)

	if !strings.Contains(out, "Gopher directories: 0") {
		t.Errorf("expected zero directories line, got:\n%s", out)
	}
	if !strings.Contains(out, "Invalid references: 0") {
		t.Errorf("expected zero invalid references line, got:\n%s", out)
	}
}

func TestRender_SortsSectionsCaseInsensitively(t *testing.T) {
	state := &crawl.State{
		Stats: stats.New(),
		TextFiles: []crawl.FileEntry{
			{HostPort: "host:70", Selector: "/Zebra"},
			{HostPort: "host:70", Selector: "/apple"},
		},
	}
	out := Render(state, nil)

	zIdx := strings.Index(out, "/Zebra")
	aIdx := strings.Index(out, "/apple")
	if aIdx == -1 || zIdx == -1 || aIdx > zIdx {
		t.Fatalf("expected case-insensitive sort to place /apple before /Zebra, got:\n%s", out)
	}
}

func TestRender_IncludesInvalidReferenceKind(t *testing.T) {
	state := &crawl.State{Stats: stats.New()}
	refs := []registry.InvalidRef{{Display: "host:70: /missing", Kind: "missing menu terminator"}}

	out := Render(state, refs)
	if !strings.Contains(out, "host:70: /missing: missing menu terminator") {
		t.Fatalf("expected invalid reference line, got:\n%s", out)
	}
}

func TestRender_SmallestTextContents(t *testing.T) {
	state := &crawl.State{Stats: stats.New()}
	state.Stats.ObserveText(3, stats.FileRef{HostPort: "host:70", Selector: "/file"}, "hi\n")

	out := Render(state, nil)
	if !strings.Contains(out, "hi\n") {
		t.Fatalf("expected smallest text contents rendered, got:\n%s", out)
	}
}
