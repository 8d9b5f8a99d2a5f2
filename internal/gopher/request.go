package gopher

import "fmt"

// Reference is a (host, port, selector) triple plus an item-type tag.
type Reference struct {
	Host     string
	Port     uint16
	Selector string
	Type     ItemType
}

// HostPort renders the "host:port" display form used in logs and the
// invalid-reference ledger.
func (r Reference) HostPort() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Request is a Reference together with its derived display form.
type Request struct {
	Reference
	Display string
}

// NewRequest builds a Request from a reference.
func NewRequest(ref Reference) Request {
	return Request{Reference: ref, Display: ref.HostPort()}
}
