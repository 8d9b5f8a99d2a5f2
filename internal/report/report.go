// Package report implements the report emitter (C6): a deterministic
// textual rendering of a finished crawl's CrawlState.
package report

import (
	"fmt"
	"sort"
	"strings"

	"gopherindex/internal/crawl"
	"gopherindex/internal/registry"
)

// Render builds the final crawl report. Sort order within each section is
// case-insensitive lexicographic on the rendered line; it is purely
// presentational and does not reflect the underlying insertion order.
func Render(state *crawl.State, invalidRefs []registry.InvalidRef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Gopher directories: %d\n", len(state.Directories))
	writeSorted(&b, entryLines(state.Directories))

	fmt.Fprintf(&b, "\nSimple text files: %d\n", len(state.TextFiles))
	writeSorted(&b, entryLines(state.TextFiles))

	fmt.Fprintf(&b, "\nBinary files: %d\n", len(state.BinaryFiles))
	writeSorted(&b, entryLines(state.BinaryFiles))

	fmt.Fprintf(&b, "\nSmallest text file: %s (%d bytes)\n", refLine(state.Stats.SmallestTextRef.HostPort, state.Stats.SmallestTextRef.Selector), state.Stats.SmallestTextSize)
	fmt.Fprintf(&b, "Contents of smallest text file:\n%s\n", state.Stats.SmallestTextContents)
	fmt.Fprintf(&b, "Largest text file: %s (%d bytes)\n", refLine(state.Stats.LargestTextRef.HostPort, state.Stats.LargestTextRef.Selector), state.Stats.LargestTextSize)
	fmt.Fprintf(&b, "Smallest binary file: %s (%d bytes)\n", refLine(state.Stats.SmallestBinRef.HostPort, state.Stats.SmallestBinRef.Selector), state.Stats.SmallestBinSize)
	fmt.Fprintf(&b, "Largest binary file: %s (%d bytes)\n", refLine(state.Stats.LargestBinRef.HostPort, state.Stats.LargestBinRef.Selector), state.Stats.LargestBinSize)

	fmt.Fprintf(&b, "\nNumber of errors: %d\n", state.NErrors)

	fmt.Fprintf(&b, "\nExternal servers: %d\n", len(state.ExternalServers))
	writeSorted(&b, externalLines(state.ExternalServers))

	fmt.Fprintf(&b, "\nInvalid references: %d\n", len(invalidRefs))
	writeSorted(&b, invalidLines(invalidRefs))

	return b.String()
}

func refLine(hostPort, selector string) string {
	return hostPort + ": " + selector
}

func entryLines(entries []crawl.FileEntry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = refLine(e.HostPort, e.Selector)
	}
	return lines
}

func externalLines(servers []crawl.ExternalServer) []string {
	lines := make([]string, len(servers))
	for i, s := range servers {
		status := "did not connect"
		if s.Connected {
			status = "connected successfully"
		}
		lines[i] = fmt.Sprintf("%s:%d: %s", s.Host, s.Port, status)
	}
	return lines
}

func invalidLines(refs []registry.InvalidRef) []string {
	lines := make([]string, len(refs))
	for i, r := range refs {
		lines[i] = fmt.Sprintf("%s: %s", r.Display, r.Kind)
	}
	return lines
}

func writeSorted(b *strings.Builder, lines []string) {
	sorted := make([]string, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
	})
	for _, line := range sorted {
		fmt.Fprintf(b, "\t%s\n", line)
	}
}
