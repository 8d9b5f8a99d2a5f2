// Package stats implements the statistics aggregator (C5): running counts
// and extreme-value tracking for downloaded text and binary files.
package stats

import "math"

// FileRef names the (host:port, selector) pair an extreme value belongs to.
type FileRef struct {
	HostPort string
	Selector string
}

// Aggregator tracks extreme sizes per file kind using strict comparisons,
// so the first file of a kind sets both its smallest and largest extreme
// and ties never displace a previously recorded reference.
type Aggregator struct {
	SmallestTextSize     uint64
	SmallestTextRef      FileRef
	SmallestTextContents string

	LargestTextSize uint64
	LargestTextRef  FileRef

	SmallestBinSize uint64
	SmallestBinRef  FileRef

	LargestBinSize uint64
	LargestBinRef  FileRef
}

// New returns an Aggregator with both smallest sentinels at their maximum
// representable value and both largest sentinels at zero, matching an
// empty crawl (spec.md §3 invariants).
func New() *Aggregator {
	return &Aggregator{
		SmallestTextSize: math.MaxUint64,
		SmallestBinSize:  math.MaxUint64,
	}
}

// ObserveText records a successfully downloaded text file's size, raw
// contents and reference.
func (a *Aggregator) ObserveText(size uint64, ref FileRef, contents string) {
	if size < a.SmallestTextSize {
		a.SmallestTextSize = size
		a.SmallestTextRef = ref
		a.SmallestTextContents = contents
	}
	if size > a.LargestTextSize {
		a.LargestTextSize = size
		a.LargestTextRef = ref
	}
}

// ObserveBinary records a successfully downloaded binary file's size and
// reference.
func (a *Aggregator) ObserveBinary(size uint64, ref FileRef) {
	if size < a.SmallestBinSize {
		a.SmallestBinSize = size
		a.SmallestBinRef = ref
	}
	if size > a.LargestBinSize {
		a.LargestBinSize = size
		a.LargestBinRef = ref
	}
}
