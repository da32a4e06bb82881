// File: internal/report/model.go (complete file)

package report

import (
	"github.com/baptistax/nettxt/internal/macaddr"
	"github.com/baptistax/nettxt/internal/tracker"
)

// Source supplies the tracked state. Both calls must return snapshots the
// writer can read without further locking.
type Source interface {
	TrackedNetworks() []*tracker.Network
	AssociatedClients() map[macaddr.MAC][]*tracker.Client
}

// Snapshotter is implemented by sources that can return networks and
// clients atomically. RenderText prefers it over the two Source calls.
type Snapshotter interface {
	Snapshot() ([]*tracker.Network, map[macaddr.MAC][]*tracker.Client)
}

// Gate decides whether a network (and with it all of its clients) is left
// out of the report. The writer always passes zero source and dest.
type Gate interface {
	ShouldExclude(bssid, source, dest macaddr.MAC) bool
}

// GateFunc adapts a plain predicate on the BSSID.
type GateFunc func(bssid macaddr.MAC) bool

func (f GateFunc) ShouldExclude(bssid, _, _ macaddr.MAC) bool {
	return f(bssid)
}

// Masthead is the fixed report header.
type Masthead struct {
	Product string
	URL     string
	Major   string
	Minor   string
	Tiny    string
}

// Stats counts what a single render emitted.
type Stats struct {
	Networks int
	Clients  int
}
