package announce

import (
	"net"
)

// Engine abstracts the wire level multicast DNS responder. The engine
// implements probing, queries and responses; this package only tells it
// which records to hold live.
type Engine interface {
	// Open creates a session bound to the given interface and its
	// current addresses. An error is fatal for this interface only.
	Open(iface string, ips []net.IP) (Session, error)
}

// Session is a bound responder context over one interface's address
// set. It exclusively owns the records registered through it.
type Session interface {
	// Register publishes the record. On success the record is
	// resolvable by peers on the session's interface.
	Register(r Record) error

	// Withdraw retracts a published record. Withdrawing a record that
	// was never registered or was already withdrawn is a no-op.
	Withdraw(r Record) error

	// Close releases the responder resources. It is called after all
	// records of the session have been withdrawn.
	Close() error
}
