package stats

import (
	"math"
	"testing"
)

func TestNew_EmptySentinels(t *testing.T) {
	a := New()
	if a.SmallestTextSize != math.MaxUint64 || a.SmallestBinSize != math.MaxUint64 {
		t.Fatal("expected smallest sentinels at max uint64")
	}
	if a.LargestTextSize != 0 || a.LargestBinSize != 0 {
		t.Fatal("expected largest sentinels at 0")
	}
}

func TestObserveText_FirstSetsBothExtremes(t *testing.T) {
	a := New()
	ref := FileRef{HostPort: "h:70", Selector: "/a"}
	a.ObserveText(3, ref, "hi\n")

	if a.SmallestTextSize != 3 || a.LargestTextSize != 3 {
		t.Fatalf("expected both extremes to be 3, got smallest=%d largest=%d", a.SmallestTextSize, a.LargestTextSize)
	}
	if a.SmallestTextContents != "hi\n" {
		t.Fatalf("got contents %q", a.SmallestTextContents)
	}
}

func TestObserveText_TieDoesNotDisplaceReference(t *testing.T) {
	a := New()
	first := FileRef{HostPort: "h:70", Selector: "/first"}
	second := FileRef{HostPort: "h:70", Selector: "/second"}

	a.ObserveText(5, first, "aaaaa")
	a.ObserveText(5, second, "bbbbb")

	if a.SmallestTextRef != first {
		t.Fatalf("expected smallest ref to stay %+v, got %+v", first, a.SmallestTextRef)
	}
	if a.SmallestTextContents != "aaaaa" {
		t.Fatalf("expected contents to stay from the first observation, got %q", a.SmallestTextContents)
	}
}

func TestObserveText_StrictlySmallerUpdates(t *testing.T) {
	a := New()
	big := FileRef{HostPort: "h:70", Selector: "/big"}
	small := FileRef{HostPort: "h:70", Selector: "/small"}

	a.ObserveText(10, big, "0123456789")
	a.ObserveText(2, small, "hi")

	if a.SmallestTextSize != 2 || a.SmallestTextRef != small || a.SmallestTextContents != "hi" {
		t.Fatalf("expected smaller file to displace extreme, got size=%d ref=%+v contents=%q", a.SmallestTextSize, a.SmallestTextRef, a.SmallestTextContents)
	}
	if a.LargestTextSize != 10 || a.LargestTextRef != big {
		t.Fatalf("expected largest to remain the first, bigger file, got size=%d ref=%+v", a.LargestTextSize, a.LargestTextRef)
	}
}

func TestObserveBinary_ZeroByteFileSetsBothExtremes(t *testing.T) {
	a := New()
	ref := FileRef{HostPort: "h:70", Selector: "/empty"}
	a.ObserveBinary(0, ref)

	if a.SmallestBinSize != 0 || a.LargestBinSize != 0 {
		t.Fatalf("expected both extremes to be 0, got smallest=%d largest=%d", a.SmallestBinSize, a.LargestBinSize)
	}
}
