package gopher

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MenuRecord is a single well-formed entry parsed from a directory listing.
type MenuRecord struct {
	Type     ItemType
	Selector string
	Host     string
	Port     uint16
}

// ParseErrorKind distinguishes the ways a menu line can fail to parse.
type ParseErrorKind int

const (
	Empty ParseErrorKind = iota
	WrongFieldCount
	EmptyDisplay
	EmptyHost
	NonNumericPort
)

func (k ParseErrorKind) String() string {
	switch k {
	case Empty:
		return "empty line"
	case WrongFieldCount:
		return "wrong field count"
	case EmptyDisplay:
		return "empty display string"
	case EmptyHost:
		return "empty host"
	case NonNumericPort:
		return "non-numeric port"
	default:
		return "unknown parse error"
	}
}

// ParseError reports why a single menu line failed to parse, and the raw
// line text for diagnostics.
type ParseError struct {
	Kind ParseErrorKind
	Line string
}

func (e *ParseError) Error() string {
	return e.Kind.String() + ": " + e.Line
}

// MenuLine is either a well-formed MenuRecord or a *ParseError; exactly one
// of Record/Err is non-nil.
type MenuLine struct {
	Record *MenuRecord
	Err    *ParseError
}

// ParseMenu decodes a Complete directory/text response body as UTF-8 and
// splits it into its constituent lines. A decode failure is a hard failure:
// the caller should treat the returned error as fatal, not per-line.
func ParseMenu(payload []byte) ([]MenuLine, error) {
	if !utf8.Valid(payload) {
		return nil, &invalidUTF8Error{context: "menu"}
	}
	body := string(payload)
	if body == "" {
		return nil, nil
	}

	var lines []MenuLine
	for _, raw := range strings.Split(body, CRLF) {
		lines = append(lines, parseLine(raw))
	}
	return lines, nil
}

func parseLine(raw string) MenuLine {
	if raw == "" {
		return MenuLine{Err: &ParseError{Kind: Empty, Line: raw}}
	}

	fields := strings.SplitN(raw, "\t", 4)
	if len(fields) < 4 {
		return MenuLine{Err: &ParseError{Kind: WrongFieldCount, Line: raw}}
	}

	display, selector, host, portField := fields[0], fields[1], fields[2], fields[3]
	if display == "" {
		return MenuLine{Err: &ParseError{Kind: EmptyDisplay, Line: raw}}
	}
	if host == "" {
		return MenuLine{Err: &ParseError{Kind: EmptyHost, Line: raw}}
	}
	port, err := strconv.ParseUint(portField, 10, 16)
	if err != nil {
		return MenuLine{Err: &ParseError{Kind: NonNumericPort, Line: raw}}
	}

	return MenuLine{Record: &MenuRecord{
		Type:     itemTypeFor(display[0]),
		Selector: selector,
		Host:     host,
		Port:     uint16(port),
	}}
}

type invalidUTF8Error struct{ context string }

func (e *invalidUTF8Error) Error() string { return "invalid UTF-8 in " + e.context }
