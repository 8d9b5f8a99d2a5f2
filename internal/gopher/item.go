// Package gopher implements the client side of the Gopher protocol: request
// framing, response reading with deadlines, and menu parsing.
package gopher

// ItemType classifies a Gopher reference by the first character of its
// display field.
type ItemType int

const (
	Text ItemType = iota
	Directory
	Error
	Binary
	Unknown
)

func (t ItemType) String() string {
	switch t {
	case Text:
		return "Text"
	case Directory:
		return "Directory"
	case Error:
		return "Error"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// itemTypeFor classifies a display field's leading character.
func itemTypeFor(c byte) ItemType {
	switch c {
	case '0':
		return Text
	case '1':
		return Directory
	case '3':
		return Error
	case '9':
		return Binary
	default:
		return Unknown
	}
}
