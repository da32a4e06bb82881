// File: internal/report/render.go (complete file)

package report

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"time"

	"github.com/baptistax/nettxt/internal/macaddr"
	"github.com/baptistax/nettxt/internal/tracker"
)

type RenderOptions struct {
	Masthead Masthead
	// Started is printed in the masthead. It does not change between
	// flushes, so an unchanged table renders byte-identical output.
	Started  time.Time
	Location *time.Location
	Gate     Gate
}

// RenderText renders the full nettxt report for the current state of src.
func RenderText(src Source, opt RenderOptions) (string, Stats) {
	var b strings.Builder
	loc := opt.Location
	if loc == nil {
		loc = time.Local
	}

	writeMasthead(&b, opt.Masthead, ctime24(opt.Started, loc))

	var st Stats
	nets, clients := snapshot(src)

	netnum := 0
	for _, net := range nets {
		// Numbers are spent on filtered and removed networks too.
		netnum++

		if opt.Gate != nil && opt.Gate.ShouldExclude(net.BSSID, macaddr.MAC{}, macaddr.MAC{}) {
			continue
		}
		if net.Type == tracker.NetworkRemoved {
			continue
		}

		writeNetwork(&b, netnum, net, loc)
		st.Networks++

		clinum := 0
		for _, cli := range clients[net.BSSID] {
			clinum++
			if cli.Type == tracker.ClientRemoved {
				continue
			}
			writeClient(&b, clinum, cli, loc)
			st.Clients++
		}
	}

	return b.String(), st
}

func snapshot(src Source) ([]*tracker.Network, map[macaddr.MAC][]*tracker.Client) {
	if s, ok := src.(Snapshotter); ok {
		return s.Snapshot()
	}
	return src.TrackedNetworks(), src.AssociatedClients()
}

func writeMasthead(b *strings.Builder, m Masthead, started string) {
	fmt.Fprintf(b, "%s (%s)\n", m.Product, m.URL)
	fmt.Fprintf(b, "%s - %s %s.%s.%s\n", started, m.Product, m.Major, m.Minor, m.Tiny)
	b.WriteString("-----------------\n\n")
}

func writeNetwork(b *strings.Builder, num int, n *tracker.Network, loc *time.Location) {
	const p = " "

	fmt.Fprintf(b, "Network %d: BSSID %s\n", num, n.BSSID)
	fmt.Fprintf(b, "%sFirst      : %s\n", p, ctime24(n.FirstSeen, loc))
	fmt.Fprintf(b, "%sLast       : %s\n", p, ctime24(n.LastSeen, loc))
	fmt.Fprintf(b, "%sType       : %s\n", p, networkTypeLabel(n.Type))
	fmt.Fprintf(b, "%sBSSID      : %s\n", p, n.BSSID)

	if n.SSID != "" {
		for _, id := range sortedKeys(n.BeaconSSIDs) {
			if s := n.BeaconSSIDs[id]; s != "" {
				fmt.Fprintf(b, "%sSSID       : \"%s\"\n", p, s)
			}
		}
		fmt.Fprintf(b, "%sLast SSID  : \"%s\"\n", p, n.SSID)
	} else if n.SSIDCloaked {
		fmt.Fprintf(b, "%sSSID       : <Cloaked>\n", p)
	} else {
		fmt.Fprintf(b, "%sSSID       : <Unknown>\n", p)
	}

	if n.BeaconInfo != "" {
		fmt.Fprintf(b, "%sBeaconInfo : \"%s\"\n", p, n.BeaconInfo)
	}

	fmt.Fprintf(b, "%sChannel    : %d\n", p, n.Channel)
	fmt.Fprintf(b, "%sMax Rate   : %2.1f\n", p, n.MaxRate)
	fmt.Fprintf(b, "%sMax Seen   : %d\n", p, scaledRate(n.MaxSeenRate))

	writeRadio(b, p, n.Carriers, n.Encodings, n.Crypt)
	writeTraffic(b, p, n.Traffic)
	writeGPS(b, p, n.GPS)
	writeIP(b, p, n.IP)

	fmt.Fprintf(b, "%sBSS Time   : %d\n", p, n.BSSTimestamp)
	fmt.Fprintf(b, "%sCDP Device : \"%s\"\n", p, n.CDPDevice)
	fmt.Fprintf(b, "%sCDP Port   : \"%s\"\n", p, n.CDPPort)
}

// Clients carry no SSID, max rate or BSS timestamp.
func writeClient(b *strings.Builder, num int, c *tracker.Client, loc *time.Location) {
	const p = "  "

	fmt.Fprintf(b, " Client %d: MAC %s\n", num, c.MAC)
	fmt.Fprintf(b, "%sFirst      : %s\n", p, ctime24(c.FirstSeen, loc))
	fmt.Fprintf(b, "%sLast       : %s\n", p, ctime24(c.LastSeen, loc))
	fmt.Fprintf(b, "%sType       : %s\n", p, clientTypeLabel(c.Type))
	fmt.Fprintf(b, "%sBSSID      : %s\n", p, c.BSSID)

	fmt.Fprintf(b, "%sChannel    : %d\n", p, c.Channel)
	fmt.Fprintf(b, "%sMax Seen   : %d\n", p, scaledRate(c.MaxSeenRate))

	writeRadio(b, p, c.Carriers, c.Encodings, c.Crypt)
	writeTraffic(b, p, c.Traffic)
	writeGPS(b, p, c.GPS)
	writeIP(b, p, c.IP)

	fmt.Fprintf(b, "%sCDP Device : \"%s\"\n", p, c.CDPDevice)
	fmt.Fprintf(b, "%sCDP Port   : \"%s\"\n", p, c.CDPPort)
}

func writeRadio(b *strings.Builder, p string, carriers tracker.CarrierSet, encodings tracker.EncodingSet, crypt tracker.CryptSet) {
	for _, s := range carrierNames(carriers) {
		fmt.Fprintf(b, "%sCarrier    : %s\n", p, s)
	}
	for _, s := range encodingNames(encodings) {
		fmt.Fprintf(b, "%sEncoding   : %s\n", p, s)
	}
	for _, s := range cryptNames(crypt) {
		fmt.Fprintf(b, "%sEncryption : %s\n", p, s)
	}
}

// Total is LLC + data; crypt packets are not added.
func writeTraffic(b *strings.Builder, p string, t tracker.Traffic) {
	fmt.Fprintf(b, "%sLLC        : %d\n", p, t.LLCPackets)
	fmt.Fprintf(b, "%sData       : %d\n", p, t.DataPackets)
	fmt.Fprintf(b, "%sCrypt      : %d\n", p, t.CryptPackets)
	fmt.Fprintf(b, "%sFragments  : %d\n", p, t.Fragments)
	fmt.Fprintf(b, "%sRetries    : %d\n", p, t.Retries)
	fmt.Fprintf(b, "%sTotal      : %d\n", p, t.LLCPackets+t.DataPackets)
	fmt.Fprintf(b, "%sDatasize   : %d\n", p, t.DataSize)
}

func writeGPS(b *strings.Builder, p string, g tracker.GPSData) {
	if !g.Valid {
		return
	}
	fmt.Fprintf(b, "%sMin Pos    : Lat %f Lon %f Alt %f Spd %f\n", p, g.MinLat, g.MinLon, g.MinAlt, g.MinSpd)
	fmt.Fprintf(b, "%sMax Pos    : Lat %f Lon %f Alt %f Spd %f\n", p, g.MaxLat, g.MaxLon, g.MaxAlt, g.MaxSpd)
	fmt.Fprintf(b, "%sPeak Pos   : Lat %f Lon %f Alt %f\n", p, g.PeakLat, g.PeakLon, g.PeakAlt)
	fmt.Fprintf(b, "%sAgg Pos    : AggLat %d AggLon %d AggAlt %d AggPts %d\n", p, g.AggLat, g.AggLon, g.AggAlt, g.AggPoints)
}

func writeIP(b *strings.Builder, p string, ip tracker.IPData) {
	if !ip.Type.Guessed() {
		return
	}
	fmt.Fprintf(b, "%sIP Type    : %s\n", p, ipTypeLabel(ip.Type))
	fmt.Fprintf(b, "%sIP Block   : %s\n", p, dottedQuad(ip.AddrBlock))
	fmt.Fprintf(b, "%sIP Netmask : %s\n", p, dottedQuad(ip.Netmask))
	fmt.Fprintf(b, "%sIP Gateway : %s\n", p, dottedQuad(ip.Gateway))
}

// ctime24 renders "Www Mmm dd hh:mm:ss yyyy", cut to 24 characters.
// The zero time is treated as the Unix epoch.
func ctime24(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		t = time.Unix(0, 0)
	}
	s := t.In(loc).Format(time.ANSIC)
	if len(s) > 24 {
		s = s[:24]
	}
	return s
}

func scaledRate(r float64) int64 {
	return int64(r * 100)
}

// dottedQuad prints IPv4 addresses only; anything else renders as 0.0.0.0.
func dottedQuad(a netip.Addr) string {
	a = a.Unmap()
	if !a.Is4() {
		return "0.0.0.0"
	}
	return a.String()
}

func sortedKeys(m map[uint32]string) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
