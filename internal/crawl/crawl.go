// Package crawl implements the traversal controller (C4) and its
// CrawlState: depth-first recursion from the origin, origin/external
// dispatch, file downloads, and aggregate statistics.
package crawl

import (
	"fmt"
	"unicode/utf8"

	"gopherindex/internal/gopher"
	"gopherindex/internal/logging"
	"gopherindex/internal/registry"
	"gopherindex/internal/sink"
	"gopherindex/internal/stats"
)

// FileEntry is a successfully fetched directory, text file, or binary file.
type FileEntry struct {
	HostPort string
	Selector string
}

// ExternalServer is one distinct external (host, port) encountered during
// the crawl, and whether a bare TCP connect to it succeeded.
type ExternalServer struct {
	Host      string
	Port      uint16
	Connected bool
}

// State is the aggregate result of a crawl: everything the report emitter
// (C6) needs.
type State struct {
	OriginHost string
	OriginPort uint16

	Directories []FileEntry
	TextFiles   []FileEntry
	BinaryFiles []FileEntry

	ExternalServers []ExternalServer
	NErrors         int

	Stats *stats.Aggregator
}

// Controller drives the depth-first traversal described in spec.md §4.4.
type Controller struct {
	state    *State
	registry *registry.Registry
	sink     *sink.Sink
	log      *logging.Logger
}

// New returns a Controller rooted at originHost:originPort.
func New(originHost string, originPort uint16, sk *sink.Sink, log *logging.Logger) *Controller {
	return &Controller{
		state: &State{
			OriginHost: originHost,
			OriginPort: originPort,
			Stats:      stats.New(),
		},
		registry: registry.New(),
		sink:     sk,
		log:      log,
	}
}

// Run crawls from the origin's root selector ("") to completion. It
// returns a non-nil error only for a hard failure (spec.md §7); any number
// of recorded invalid references is a successful crawl.
func (c *Controller) Run() error {
	return c.crawlDirectory(gopher.Reference{
		Host:     c.state.OriginHost,
		Port:     c.state.OriginPort,
		Selector: "",
		Type:     gopher.Directory,
	})
}

// State returns the accumulated CrawlState. Valid after Run returns nil.
func (c *Controller) State() *State {
	return c.state
}

// Registry exposes the invalid-reference ledger for the report emitter.
func (c *Controller) Registry() *registry.Registry {
	return c.registry
}

func (c *Controller) isOrigin(host string, port uint16) bool {
	return host == c.state.OriginHost && port == c.state.OriginPort
}

// crawlDirectory fetches and recurses into an origin directory. Guarding on
// Seen here (rather than only at call sites) keeps a directory that
// references itself, directly or through a diamond, from ever being
// fetched twice.
func (c *Controller) crawlDirectory(ref gopher.Reference) error {
	if c.registry.Seen(ref.Host, ref.Port, ref.Selector) {
		return nil
	}
	c.registry.MarkVisited(ref.Host, ref.Port, ref.Selector)

	hostPort := ref.HostPort()
	c.log.Requesting(ref.Selector, hostPort)
	c.log.Connecting(hostPort)

	resp, err := gopher.Fetch(gopher.NewRequest(ref))
	if err != nil {
		return fmt.Errorf("fetch directory %s %q: %w", hostPort, ref.Selector, err)
	}
	if resp.Outcome != gopher.Complete {
		c.registry.RecordInvalid(fmt.Sprintf("%s: %s", hostPort, ref.Selector), resp.Outcome.String())
		return nil
	}

	// Only an origin directory whose menu fetch succeeded is counted, so
	// ndir == len(directories) always holds.
	c.state.Directories = append(c.state.Directories, FileEntry{HostPort: hostPort, Selector: ref.Selector})

	lines, err := gopher.ParseMenu(resp.Payload)
	if err != nil {
		return fmt.Errorf("parse menu %s %q: %w", hostPort, ref.Selector, err)
	}
	for _, line := range lines {
		if err := c.dispatch(line, hostPort); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) dispatch(line gopher.MenuLine, parentHostPort string) error {
	if line.Err != nil {
		if line.Err.Kind == gopher.Empty {
			return nil
		}
		c.registry.RecordInvalid(fmt.Sprintf("%s: %s", parentHostPort, line.Err.Line), line.Err.Kind.String())
		return nil
	}

	rec := line.Record
	switch rec.Type {
	case gopher.Text, gopher.Binary:
		return c.fetchFile(rec)
	case gopher.Directory:
		return c.handleDirectory(rec)
	case gopher.Error:
		c.state.NErrors++
		return nil
	default: // Unknown
		return nil
	}
}

func (c *Controller) handleDirectory(rec *gopher.MenuRecord) error {
	if !c.isOrigin(rec.Host, rec.Port) {
		c.probeExternal(rec.Host, rec.Port)
		return nil
	}
	return c.crawlDirectory(gopher.Reference{
		Host:     rec.Host,
		Port:     rec.Port,
		Selector: rec.Selector,
		Type:     gopher.Directory,
	})
}

// probeExternal attempts one bare TCP connection to an external directory
// reference and records the outcome. Each distinct (host, port) produces
// exactly one entry, in first-encountered order.
func (c *Controller) probeExternal(host string, port uint16) {
	for _, es := range c.state.ExternalServers {
		if es.Host == host && es.Port == port {
			return
		}
	}
	ok := gopher.Probe(host, port)
	c.log.ExternalConnected(host, port, ok)
	c.state.ExternalServers = append(c.state.ExternalServers, ExternalServer{Host: host, Port: port, Connected: ok})
}

func (c *Controller) fetchFile(rec *gopher.MenuRecord) error {
	if c.registry.Seen(rec.Host, rec.Port, rec.Selector) {
		return nil
	}
	c.registry.MarkVisited(rec.Host, rec.Port, rec.Selector)

	ref := gopher.Reference{Host: rec.Host, Port: rec.Port, Selector: rec.Selector, Type: rec.Type}
	hostPort := ref.HostPort()
	c.log.Requesting(ref.Selector, hostPort)
	c.log.Connecting(hostPort)

	resp, err := gopher.Fetch(gopher.NewRequest(ref))
	if err != nil {
		return fmt.Errorf("fetch file %s %q: %w", hostPort, ref.Selector, err)
	}
	if resp.Outcome != gopher.Complete {
		c.registry.RecordInvalid(fmt.Sprintf("%s: %s", hostPort, ref.Selector), resp.Outcome.String())
		return nil
	}

	size, err := c.sink.Write(ref.Selector, resp.Payload)
	if err != nil {
		return fmt.Errorf("write %s %q: %w", hostPort, ref.Selector, err)
	}

	fileRef := stats.FileRef{HostPort: hostPort, Selector: ref.Selector}
	switch rec.Type {
	case gopher.Text:
		if size < c.state.Stats.SmallestTextSize && !utf8.Valid(resp.Payload) {
			return fmt.Errorf("invalid UTF-8 in smallest text candidate %s %q", hostPort, ref.Selector)
		}
		c.state.Stats.ObserveText(size, fileRef, string(resp.Payload))
		c.state.TextFiles = append(c.state.TextFiles, FileEntry{HostPort: hostPort, Selector: ref.Selector})
	case gopher.Binary:
		c.state.Stats.ObserveBinary(size, fileRef)
		c.state.BinaryFiles = append(c.state.BinaryFiles, FileEntry{HostPort: hostPort, Selector: ref.Selector})
	}
	return nil
}
