// File: internal/report/render_test.go (complete file)

package report

import (
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baptistax/nettxt/internal/macaddr"
	"github.com/baptistax/nettxt/internal/tracker"
)

type fakeSource struct {
	nets    []*tracker.Network
	clients map[macaddr.MAC][]*tracker.Client
}

func (f *fakeSource) TrackedNetworks() []*tracker.Network { return f.nets }

func (f *fakeSource) AssociatedClients() map[macaddr.MAC][]*tracker.Client { return f.clients }

// snapshotSource serves different data from Snapshot than from the two
// Source calls, so tests can tell which path RenderText took.
type snapshotSource struct {
	fakeSource
	snap fakeSource
}

func (s *snapshotSource) Snapshot() ([]*tracker.Network, map[macaddr.MAC][]*tracker.Client) {
	return s.snap.nets, s.snap.clients
}

var (
	testMasthead = Masthead{
		Product: "Kismet",
		URL:     "http://www.kismetwireless.net",
		Major:   "2007",
		Minor:   "10",
		Tiny:    "R1",
	}
	testStarted = time.Date(2007, 10, 14, 9, 30, 0, 0, time.UTC)
	testFirst   = time.Date(2007, 10, 14, 9, 0, 5, 0, time.UTC)
	testLast    = time.Date(2007, 10, 14, 9, 29, 59, 0, time.UTC)
)

func testOptions() RenderOptions {
	return RenderOptions{Masthead: testMasthead, Started: testStarted, Location: time.UTC}
}

func roundTripNetwork() *tracker.Network {
	return &tracker.Network{
		BSSID:       macaddr.MustParse("AA:BB:CC:DD:EE:FF"),
		FirstSeen:   testFirst,
		LastSeen:    testLast,
		Type:        tracker.NetworkInfrastructure,
		SSID:        "TestNet",
		BeaconSSIDs: map[uint32]string{100: "TestNet"},
		Channel:     6,
		MaxRate:     54,
		MaxSeenRate: 54,
		Carriers:    1<<tracker.Carrier80211b | 1<<tracker.Carrier80211g,
		Encodings:   1<<tracker.EncodingCCK | 1<<tracker.EncodingOFDM,
		Traffic: tracker.Traffic{
			LLCPackets:   10,
			DataPackets:  20,
			CryptPackets: 5,
			Fragments:    1,
			Retries:      2,
			DataSize:     4096,
		},
		IP:           tracker.IPData{Type: tracker.IPFactoryGuess},
		BSSTimestamp: 123456789,
	}
}

func roundTripClient() *tracker.Client {
	return &tracker.Client{
		MAC:         macaddr.MustParse("11:22:33:44:55:66"),
		BSSID:       macaddr.MustParse("AA:BB:CC:DD:EE:FF"),
		FirstSeen:   testFirst,
		LastSeen:    testLast,
		Type:        tracker.ClientEstablished,
		Channel:     6,
		MaxSeenRate: 11,
		Carriers:    1 << tracker.Carrier80211b,
		Traffic:     tracker.Traffic{DataPackets: 3, DataSize: 300},
	}
}

const roundTripGolden = `Kismet (http://www.kismetwireless.net)
Sun Oct 14 09:30:00 2007 - Kismet 2007.10.R1
-----------------

Network 1: BSSID AA:BB:CC:DD:EE:FF
 First      : Sun Oct 14 09:00:05 2007
 Last       : Sun Oct 14 09:29:59 2007
 Type       : infrastructure
 BSSID      : AA:BB:CC:DD:EE:FF
 SSID       : "TestNet"
 Last SSID  : "TestNet"
 Channel    : 6
 Max Rate   : 54.0
 Max Seen   : 5400
 Carrier    : IEEE 802.11b
 Carrier    : IEEE 802.11g
 Encoding   : CCK
 Encoding   : OFDM
 Encryption : None
 LLC        : 10
 Data       : 20
 Crypt      : 5
 Fragments  : 1
 Retries    : 2
 Total      : 30
 Datasize   : 4096
 BSS Time   : 123456789
 CDP Device : ""
 CDP Port   : ""
 Client 1: MAC 11:22:33:44:55:66
  First      : Sun Oct 14 09:00:05 2007
  Last       : Sun Oct 14 09:29:59 2007
  Type       : established
  BSSID      : AA:BB:CC:DD:EE:FF
  Channel    : 6
  Max Seen   : 1100
  Carrier    : IEEE 802.11b
  Encryption : None
  LLC        : 0
  Data       : 3
  Crypt      : 0
  Fragments  : 0
  Retries    : 0
  Total      : 3
  Datasize   : 300
  CDP Device : ""
  CDP Port   : ""
`

func TestRenderText_RoundTripGolden(t *testing.T) {
	tbl := tracker.NewTable()
	tbl.UpsertNetwork(roundTripNetwork())
	tbl.UpsertClient(roundTripClient())

	got, st := RenderText(tbl, testOptions())
	if diff := cmp.Diff(roundTripGolden, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Stats{Networks: 1, Clients: 1}, st)
}

func TestRenderText_EmptyTableIsMastheadOnly(t *testing.T) {
	got, st := RenderText(&fakeSource{}, testOptions())

	want := "Kismet (http://www.kismetwireless.net)\n" +
		"Sun Oct 14 09:30:00 2007 - Kismet 2007.10.R1\n" +
		"-----------------\n\n"
	assert.Equal(t, want, got)
	assert.Zero(t, st.Networks)
}

func TestRenderText_RemovedNetworksSpendNumbers(t *testing.T) {
	removed1 := roundTripNetwork()
	removed1.BSSID = macaddr.MustParse("00:00:00:00:00:01")
	removed1.Type = tracker.NetworkRemoved
	removed2 := roundTripNetwork()
	removed2.BSSID = macaddr.MustParse("00:00:00:00:00:02")
	removed2.Type = tracker.NetworkRemoved
	live := roundTripNetwork()

	src := &fakeSource{
		nets: []*tracker.Network{removed1, removed2, live},
		clients: map[macaddr.MAC][]*tracker.Client{
			removed1.BSSID: {{MAC: macaddr.MustParse("00:00:00:00:00:0A"), BSSID: removed1.BSSID, Type: tracker.ClientEstablished}},
		},
	}

	got, st := RenderText(src, testOptions())
	assert.NotContains(t, got, "Network 1:")
	assert.NotContains(t, got, "Network 2:")
	assert.Contains(t, got, "Network 3: BSSID AA:BB:CC:DD:EE:FF\n")
	assert.NotContains(t, got, "00:00:00:00:00:0A")
	assert.Equal(t, 1, st.Networks)
}

func TestRenderText_RemovedClientsSpendNumbers(t *testing.T) {
	net := roundTripNetwork()
	gone := roundTripClient()
	gone.MAC = macaddr.MustParse("00:00:00:00:00:0B")
	gone.Type = tracker.ClientRemoved
	kept := roundTripClient()

	src := &fakeSource{
		nets:    []*tracker.Network{net},
		clients: map[macaddr.MAC][]*tracker.Client{net.BSSID: {gone, kept}},
	}

	got, st := RenderText(src, testOptions())
	assert.NotContains(t, got, " Client 1:")
	assert.NotContains(t, got, "00:00:00:00:00:0B")
	assert.Contains(t, got, " Client 2: MAC 11:22:33:44:55:66\n")
	assert.Equal(t, 1, st.Clients)
}

func TestRenderText_ClientCounterIsPerNetwork(t *testing.T) {
	a := roundTripNetwork()
	a.BSSID = macaddr.MustParse("00:00:00:00:00:01")
	b := roundTripNetwork()

	ca := roundTripClient()
	ca.BSSID = a.BSSID
	cb := roundTripClient()

	src := &fakeSource{
		nets:    []*tracker.Network{a, b},
		clients: map[macaddr.MAC][]*tracker.Client{a.BSSID: {ca}, b.BSSID: {cb}},
	}

	got, _ := RenderText(src, testOptions())
	assert.Equal(t, 2, strings.Count(got, " Client 1: MAC "))
	assert.NotContains(t, got, " Client 2:")
}

func TestRenderText_GateExcludesNetworkAndClients(t *testing.T) {
	hidden := roundTripNetwork()
	hidden.BSSID = macaddr.MustParse("00:00:00:00:00:01")
	shown := roundTripNetwork()

	hiddenClient := roundTripClient()
	hiddenClient.MAC = macaddr.MustParse("00:00:00:00:00:0C")
	hiddenClient.BSSID = hidden.BSSID

	src := &fakeSource{
		nets:    []*tracker.Network{hidden, shown},
		clients: map[macaddr.MAC][]*tracker.Client{hidden.BSSID: {hiddenClient}},
	}

	opt := testOptions()
	var seen []macaddr.MAC
	opt.Gate = GateFunc(func(bssid macaddr.MAC) bool {
		seen = append(seen, bssid)
		return bssid == hidden.BSSID
	})

	got, _ := RenderText(src, opt)
	assert.NotContains(t, got, "00:00:00:00:00:01")
	assert.NotContains(t, got, "00:00:00:00:00:0C")
	assert.Contains(t, got, "Network 2: BSSID AA:BB:CC:DD:EE:FF\n")
	assert.Equal(t, []macaddr.MAC{hidden.BSSID, shown.BSSID}, seen)
}

func TestRenderText_SSIDVariants(t *testing.T) {
	history := roundTripNetwork()
	history.SSID = "Current"
	history.BeaconSSIDs = map[uint32]string{300: "Third", 100: "First", 200: ""}

	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{history}}, testOptions())
	assert.Contains(t, got, " SSID       : \"First\"\n SSID       : \"Third\"\n Last SSID  : \"Current\"\n")

	cloaked := roundTripNetwork()
	cloaked.SSID = ""
	cloaked.SSIDCloaked = true
	cloaked.BeaconSSIDs = map[uint32]string{1: "ignored"}
	got, _ = RenderText(&fakeSource{nets: []*tracker.Network{cloaked}}, testOptions())
	assert.Contains(t, got, " SSID       : <Cloaked>\n")
	assert.NotContains(t, got, "ignored")
	assert.NotContains(t, got, "Last SSID")

	unknown := roundTripNetwork()
	unknown.SSID = ""
	got, _ = RenderText(&fakeSource{nets: []*tracker.Network{unknown}}, testOptions())
	assert.Contains(t, got, " SSID       : <Unknown>\n")
}

func TestRenderText_BeaconInfoOnlyWhenSet(t *testing.T) {
	n := roundTripNetwork()
	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	assert.NotContains(t, got, "BeaconInfo")

	n.BeaconInfo = "lobby AP"
	got, _ = RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	assert.Contains(t, got, " BeaconInfo : \"lobby AP\"\n Channel    : 6\n")
}

func TestRenderText_CryptLinesInBitOrder(t *testing.T) {
	n := roundTripNetwork()
	n.Crypt = tracker.CryptTKIP | tracker.CryptWEP

	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	assert.Equal(t, 2, strings.Count(got, "Encryption :"))
	assert.Contains(t, got, " Encryption : WEP\n Encryption : TKIP\n")
	assert.NotContains(t, got, "Encryption : None")
}

func TestRenderText_TotalExcludesCrypt(t *testing.T) {
	n := roundTripNetwork()
	n.Traffic = tracker.Traffic{LLCPackets: 7, DataPackets: 11, CryptPackets: 100}
	c := roundTripClient()
	c.Traffic = tracker.Traffic{LLCPackets: 1, DataPackets: 2, CryptPackets: 50}

	src := &fakeSource{
		nets:    []*tracker.Network{n},
		clients: map[macaddr.MAC][]*tracker.Client{n.BSSID: {c}},
	}
	got, _ := RenderText(src, testOptions())
	assert.Contains(t, got, " Total      : 18\n")
	assert.Contains(t, got, "  Total      : 3\n")
}

func TestRenderText_GPSBlockOnlyWhenValid(t *testing.T) {
	n := roundTripNetwork()
	n.GPS = tracker.GPSData{
		MinLat: 37.5, MinLon: -122.25, MinAlt: 10, MinSpd: 0,
		MaxLat: 37.75, MaxLon: -122, MaxAlt: 20, MaxSpd: 1.5,
		PeakLat: 37.6, PeakLon: -122.1, PeakAlt: 15,
		AggLat: 375000, AggLon: -1222500, AggAlt: 100, AggPoints: 10,
	}

	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	assert.NotContains(t, got, "Pos    :")

	n.GPS.Valid = true
	got, _ = RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	want := " Min Pos    : Lat 37.500000 Lon -122.250000 Alt 10.000000 Spd 0.000000\n" +
		" Max Pos    : Lat 37.750000 Lon -122.000000 Alt 20.000000 Spd 1.500000\n" +
		" Peak Pos   : Lat 37.600000 Lon -122.100000 Alt 15.000000\n" +
		" Agg Pos    : AggLat 375000 AggLon -1222500 AggAlt 100 AggPts 10\n"
	assert.Contains(t, got, want)
}

func TestRenderText_IPBlockOnlyInsideSentinels(t *testing.T) {
	n := roundTripNetwork()
	n.IP = tracker.IPData{
		AddrBlock: netip.MustParseAddr("192.168.1.0"),
		Netmask:   netip.MustParseAddr("255.255.255.0"),
		Gateway:   netip.MustParseAddr("192.168.1.1"),
	}

	for _, typ := range []tracker.IPType{tracker.IPUnknown, tracker.IPFactoryGuess, tracker.IPGroup} {
		n.IP.Type = typ
		got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
		assert.NotContains(t, got, "IP Type", "type %d", typ)
	}

	n.IP.Type = tracker.IPDHCP
	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	want := " IP Type    : DHCP\n" +
		" IP Block   : 192.168.1.0\n" +
		" IP Netmask : 255.255.255.0\n" +
		" IP Gateway : 192.168.1.1\n" +
		" BSS Time   : 123456789\n"
	assert.Contains(t, got, want)
}

func TestRenderText_ClientIPAndGPS(t *testing.T) {
	n := roundTripNetwork()
	c := roundTripClient()
	c.GPS = tracker.GPSData{Valid: true, AggPoints: 3}
	c.IP = tracker.IPData{Type: tracker.IPARP, AddrBlock: netip.MustParseAddr("10.0.0.0")}
	c.CDPDevice = "switch-1"
	c.CDPPort = "Gi0/1"

	src := &fakeSource{
		nets:    []*tracker.Network{n},
		clients: map[macaddr.MAC][]*tracker.Client{n.BSSID: {c}},
	}
	got, _ := RenderText(src, testOptions())
	assert.Contains(t, got, "  Agg Pos    : AggLat 0 AggLon 0 AggAlt 0 AggPts 3\n")
	assert.Contains(t, got, "  IP Type    : ARP\n  IP Block   : 10.0.0.0\n  IP Netmask : 0.0.0.0\n  IP Gateway : 0.0.0.0\n")
	assert.Contains(t, got, "  CDP Device : \"switch-1\"\n  CDP Port   : \"Gi0/1\"\n")
}

func TestRenderText_RateFormatting(t *testing.T) {
	n := roundTripNetwork()
	n.MaxRate = 5.5
	n.MaxSeenRate = 1.5

	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	assert.Contains(t, got, " Max Rate   : 5.5\n Max Seen   : 150\n")
}

func TestCtime24(t *testing.T) {
	assert.Equal(t, "Mon Jan  2 15:04:05 2006", ctime24(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), time.UTC))
	assert.Equal(t, "Thu Jan  1 00:00:00 1970", ctime24(time.Time{}, time.UTC))

	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "Sat Jan  1 01:30:00 2000", ctime24(time.Date(1999, 12, 31, 23, 30, 0, 0, time.UTC), loc))

	s := ctime24(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), time.UTC)
	require.Len(t, s, 24)
}

func TestRenderText_PrefersSnapshot(t *testing.T) {
	stale := roundTripNetwork()
	stale.BSSID = macaddr.MustParse("00:00:00:00:00:01")
	fresh := roundTripNetwork()
	c := roundTripClient()

	src := &snapshotSource{
		fakeSource: fakeSource{nets: []*tracker.Network{stale}},
		snap: fakeSource{
			nets:    []*tracker.Network{fresh},
			clients: map[macaddr.MAC][]*tracker.Client{fresh.BSSID: {c}},
		},
	}
	got, st := RenderText(src, testOptions())

	assert.Contains(t, got, "Network 1: BSSID "+fresh.BSSID.String()+"\n")
	assert.NotContains(t, got, "00:00:00:00:00:01")
	assert.Equal(t, Stats{Networks: 1, Clients: 1}, st)
}

func TestRenderText_NonIPv4AddressesPrintAsZero(t *testing.T) {
	n := roundTripNetwork()
	n.IP = tracker.IPData{
		Type:      tracker.IPDHCP,
		AddrBlock: netip.MustParseAddr("fe80::1"),
		Netmask:   netip.MustParseAddr("::ffff:255.255.255.0"),
		Gateway:   netip.MustParseAddr("10.0.0.1"),
	}

	got, _ := RenderText(&fakeSource{nets: []*tracker.Network{n}}, testOptions())
	assert.Contains(t, got, " IP Block   : 0.0.0.0\n IP Netmask : 255.255.255.0\n IP Gateway : 10.0.0.1\n")
	assert.NotContains(t, got, "fe80")
}
