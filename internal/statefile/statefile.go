// File: internal/statefile/statefile.go (complete file)

package statefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baptistax/nettxt/internal/macaddr"
	"github.com/baptistax/nettxt/internal/tracker"
)

// Document is the on-disk form of the tracked state.
type Document struct {
	Networks []NetworkRecord `yaml:"networks"`
	Clients  []ClientRecord  `yaml:"clients"`
}

type NetworkRecord struct {
	BSSID     string    `yaml:"bssid"`
	FirstSeen time.Time `yaml:"first_seen"`
	LastSeen  time.Time `yaml:"last_seen"`
	Type      string    `yaml:"type"`

	SSID        string            `yaml:"ssid"`
	BeaconSSIDs map[uint32]string `yaml:"beacon_ssids"`
	SSIDCloaked bool              `yaml:"ssid_cloaked"`
	BeaconInfo  string            `yaml:"beacon_info"`

	Channel     int      `yaml:"channel"`
	MaxRate     float64  `yaml:"max_rate"`
	MaxSeenRate float64  `yaml:"max_seen_rate"`
	Carriers    []string `yaml:"carriers"`
	Encodings   []string `yaml:"encodings"`
	Crypt       []string `yaml:"crypt"`

	TrafficRecord `yaml:",inline"`
	GPS           *GPSRecord `yaml:"gps"`
	IP            *IPRecord  `yaml:"ip"`

	BSSTimestamp uint64 `yaml:"bss_timestamp"`
	CDPDevice    string `yaml:"cdp_device"`
	CDPPort      string `yaml:"cdp_port"`
}

type ClientRecord struct {
	MAC       string    `yaml:"mac"`
	BSSID     string    `yaml:"bssid"`
	FirstSeen time.Time `yaml:"first_seen"`
	LastSeen  time.Time `yaml:"last_seen"`
	Type      string    `yaml:"type"`

	Channel     int      `yaml:"channel"`
	MaxSeenRate float64  `yaml:"max_seen_rate"`
	Carriers    []string `yaml:"carriers"`
	Encodings   []string `yaml:"encodings"`
	Crypt       []string `yaml:"crypt"`

	TrafficRecord `yaml:",inline"`
	GPS           *GPSRecord `yaml:"gps"`
	IP            *IPRecord  `yaml:"ip"`

	CDPDevice string `yaml:"cdp_device"`
	CDPPort   string `yaml:"cdp_port"`
}

type TrafficRecord struct {
	LLCPackets   int    `yaml:"llc_packets"`
	DataPackets  int    `yaml:"data_packets"`
	CryptPackets int    `yaml:"crypt_packets"`
	Fragments    int    `yaml:"fragments"`
	Retries      int    `yaml:"retries"`
	DataSize     uint64 `yaml:"data_size"`
}

// GPSRecord present in the document means the fix is valid.
type GPSRecord struct {
	MinLat  float64 `yaml:"min_lat"`
	MinLon  float64 `yaml:"min_lon"`
	MinAlt  float64 `yaml:"min_alt"`
	MinSpd  float64 `yaml:"min_spd"`
	MaxLat  float64 `yaml:"max_lat"`
	MaxLon  float64 `yaml:"max_lon"`
	MaxAlt  float64 `yaml:"max_alt"`
	MaxSpd  float64 `yaml:"max_spd"`
	PeakLat float64 `yaml:"peak_lat"`
	PeakLon float64 `yaml:"peak_lon"`
	PeakAlt float64 `yaml:"peak_alt"`
	AggLat  int64   `yaml:"agg_lat"`
	AggLon  int64   `yaml:"agg_lon"`
	AggAlt  int64   `yaml:"agg_alt"`
	AggPts  uint64  `yaml:"agg_points"`
}

type IPRecord struct {
	Type    string `yaml:"type"`
	Block   string `yaml:"block"`
	Netmask string `yaml:"netmask"`
	Gateway string `yaml:"gateway"`
}

// Load reads and converts a state file.
func Load(path string) ([]*tracker.Network, []*tracker.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read state file %q: %w", path, err)
	}
	nets, clis, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("state file %q: %w", path, err)
	}
	return nets, clis, nil
}

// LoadInto replaces the table contents with the state file. The table is
// left untouched if the file cannot be read or decoded.
func LoadInto(path string, table *tracker.Table) error {
	nets, clis, err := Load(path)
	if err != nil {
		return err
	}
	table.Replace(nets, clis)
	return nil
}

// Decode converts a state document. Unknown keys are rejected.
func Decode(data []byte) ([]*tracker.Network, []*tracker.Client, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, err
		}
	}

	nets := make([]*tracker.Network, 0, len(doc.Networks))
	for i, r := range doc.Networks {
		n, err := r.toNetwork()
		if err != nil {
			return nil, nil, fmt.Errorf("networks[%d]: %w", i, err)
		}
		nets = append(nets, n)
	}

	clis := make([]*tracker.Client, 0, len(doc.Clients))
	for i, r := range doc.Clients {
		c, err := r.toClient()
		if err != nil {
			return nil, nil, fmt.Errorf("clients[%d]: %w", i, err)
		}
		clis = append(clis, c)
	}
	return nets, clis, nil
}

func (r NetworkRecord) toNetwork() (*tracker.Network, error) {
	bssid, err := macaddr.Parse(r.BSSID)
	if err != nil {
		return nil, err
	}
	typ, err := parseNetworkType(r.Type)
	if err != nil {
		return nil, err
	}
	radio, err := parseRadio(r.Carriers, r.Encodings, r.Crypt)
	if err != nil {
		return nil, err
	}
	ip, err := r.IP.toIPData()
	if err != nil {
		return nil, err
	}

	return &tracker.Network{
		BSSID:        bssid,
		FirstSeen:    r.FirstSeen,
		LastSeen:     r.LastSeen,
		Type:         typ,
		SSID:         r.SSID,
		BeaconSSIDs:  r.BeaconSSIDs,
		SSIDCloaked:  r.SSIDCloaked,
		BeaconInfo:   r.BeaconInfo,
		Channel:      r.Channel,
		MaxRate:      r.MaxRate,
		MaxSeenRate:  r.MaxSeenRate,
		Carriers:     radio.carriers,
		Encodings:    radio.encodings,
		Crypt:        radio.crypt,
		Traffic:      r.TrafficRecord.toTraffic(),
		GPS:          r.GPS.toGPSData(),
		IP:           ip,
		BSSTimestamp: r.BSSTimestamp,
		CDPDevice:    r.CDPDevice,
		CDPPort:      r.CDPPort,
	}, nil
}

func (r ClientRecord) toClient() (*tracker.Client, error) {
	mac, err := macaddr.Parse(r.MAC)
	if err != nil {
		return nil, err
	}
	bssid, err := macaddr.Parse(r.BSSID)
	if err != nil {
		return nil, err
	}
	typ, err := parseClientType(r.Type)
	if err != nil {
		return nil, err
	}
	radio, err := parseRadio(r.Carriers, r.Encodings, r.Crypt)
	if err != nil {
		return nil, err
	}
	ip, err := r.IP.toIPData()
	if err != nil {
		return nil, err
	}

	return &tracker.Client{
		MAC:         mac,
		BSSID:       bssid,
		FirstSeen:   r.FirstSeen,
		LastSeen:    r.LastSeen,
		Type:        typ,
		Channel:     r.Channel,
		MaxSeenRate: r.MaxSeenRate,
		Carriers:    radio.carriers,
		Encodings:   radio.encodings,
		Crypt:       radio.crypt,
		Traffic:     r.TrafficRecord.toTraffic(),
		GPS:         r.GPS.toGPSData(),
		IP:          ip,
		CDPDevice:   r.CDPDevice,
		CDPPort:     r.CDPPort,
	}, nil
}

func (t TrafficRecord) toTraffic() tracker.Traffic {
	return tracker.Traffic{
		LLCPackets:   t.LLCPackets,
		DataPackets:  t.DataPackets,
		CryptPackets: t.CryptPackets,
		Fragments:    t.Fragments,
		Retries:      t.Retries,
		DataSize:     t.DataSize,
	}
}

func (g *GPSRecord) toGPSData() tracker.GPSData {
	if g == nil {
		return tracker.GPSData{}
	}
	return tracker.GPSData{
		Valid:  true,
		MinLat: g.MinLat, MinLon: g.MinLon, MinAlt: g.MinAlt, MinSpd: g.MinSpd,
		MaxLat: g.MaxLat, MaxLon: g.MaxLon, MaxAlt: g.MaxAlt, MaxSpd: g.MaxSpd,
		PeakLat: g.PeakLat, PeakLon: g.PeakLon, PeakAlt: g.PeakAlt,
		AggLat: g.AggLat, AggLon: g.AggLon, AggAlt: g.AggAlt,
		AggPoints: g.AggPts,
	}
}

func (r *IPRecord) toIPData() (tracker.IPData, error) {
	if r == nil {
		return tracker.IPData{}, nil
	}
	typ, err := parseIPType(r.Type)
	if err != nil {
		return tracker.IPData{}, err
	}
	data := tracker.IPData{Type: typ}
	for _, f := range []struct {
		in  string
		dst *netip.Addr
	}{
		{r.Block, &data.AddrBlock},
		{r.Netmask, &data.Netmask},
		{r.Gateway, &data.Gateway},
	} {
		if strings.TrimSpace(f.in) == "" {
			continue
		}
		a, err := netip.ParseAddr(strings.TrimSpace(f.in))
		if err != nil {
			return tracker.IPData{}, err
		}
		if !a.Is4() {
			return tracker.IPData{}, fmt.Errorf("ip %q: only IPv4 addresses are tracked", f.in)
		}
		*f.dst = a
	}
	return data, nil
}
