// File: internal/tracker/table.go (complete file)

package tracker

import (
	"slices"
	"sync"

	"github.com/baptistax/nettxt/internal/macaddr"
)

// Table is the tracked-state store. Readers get deep copies so a report
// can be rendered while the table keeps changing.
type Table struct {
	mu       sync.RWMutex
	networks map[macaddr.MAC]*Network
	clients  []*Client
}

func NewTable() *Table {
	return &Table{networks: map[macaddr.MAC]*Network{}}
}

// Replace swaps the whole table contents, as after a state reload.
func (t *Table) Replace(networks []*Network, clients []*Client) {
	nets := make(map[macaddr.MAC]*Network, len(networks))
	for _, n := range networks {
		nets[n.BSSID] = n.clone()
	}
	cls := make([]*Client, 0, len(clients))
	for _, c := range clients {
		cls = append(cls, c.clone())
	}

	t.mu.Lock()
	t.networks = nets
	t.clients = cls
	t.mu.Unlock()
}

func (t *Table) UpsertNetwork(n *Network) {
	t.mu.Lock()
	t.networks[n.BSSID] = n.clone()
	t.mu.Unlock()
}

// UpsertClient keys clients by (BSSID, MAC); a new client is appended so
// association order follows first sighting.
func (t *Table) UpsertClient(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, old := range t.clients {
		if old.BSSID == c.BSSID && old.MAC == c.MAC {
			t.clients[i] = c.clone()
			return
		}
	}
	t.clients = append(t.clients, c.clone())
}

// TrackedNetworks returns a copy of every network ordered by BSSID.
func (t *Table) TrackedNetworks() []*Network {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.networksLocked()
}

// AssociatedClients returns copies of all clients indexed by BSSID.
// Clients sharing a BSSID keep insertion order.
func (t *Table) AssociatedClients() map[macaddr.MAC][]*Client {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clientsLocked()
}

// Snapshot returns networks and clients taken under the same read lock, so
// both halves come from one generation of the table.
func (t *Table) Snapshot() ([]*Network, map[macaddr.MAC][]*Client) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.networksLocked(), t.clientsLocked()
}

func (t *Table) networksLocked() []*Network {
	out := make([]*Network, 0, len(t.networks))
	for _, n := range t.networks {
		out = append(out, n.clone())
	}
	slices.SortFunc(out, func(a, b *Network) int {
		return macaddr.Compare(a.BSSID, b.BSSID)
	})
	return out
}

func (t *Table) clientsLocked() map[macaddr.MAC][]*Client {
	out := make(map[macaddr.MAC][]*Client)
	for _, c := range t.clients {
		out[c.BSSID] = append(out[c.BSSID], c.clone())
	}
	return out
}

// Len returns the number of networks and clients held.
func (t *Table) Len() (networks, clients int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.networks), len(t.clients)
}
