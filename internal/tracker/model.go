// File: internal/tracker/model.go (complete file)

package tracker

import (
	"net/netip"
	"time"

	"github.com/baptistax/nettxt/internal/macaddr"
)

type NetworkType int

const (
	NetworkInfrastructure NetworkType = iota
	NetworkAdHoc
	NetworkProbe
	NetworkData
	NetworkTurbocell
	NetworkUnknown
	// NetworkRemoved marks a record the engine has retired but not yet deleted.
	NetworkRemoved
)

type ClientType int

const (
	ClientUnknown ClientType = iota
	ClientFromDS
	ClientToDS
	ClientInterDS
	ClientEstablished
	ClientAdHoc
	ClientRemoved
)

// CarrierSet holds one bit per Carrier (1 << carrier).
type CarrierSet uint32

type Carrier uint

const (
	CarrierUnknown Carrier = iota
	Carrier80211b
	Carrier80211bPlus
	Carrier80211a
	Carrier80211g
	Carrier80211FHSS
	Carrier80211DSSS
)

func (s CarrierSet) Has(c Carrier) bool { return s&(1<<c) != 0 }

// EncodingSet holds one bit per Encoding (1 << encoding).
type EncodingSet uint32

type Encoding uint

const (
	EncodingUnknown Encoding = iota
	EncodingCCK
	EncodingPBCC
	EncodingOFDM
)

func (s EncodingSet) Has(e Encoding) bool { return s&(1<<e) != 0 }

// CryptSet is a bitmask of Crypt* flags. Zero means no encryption seen.
type CryptSet uint64

const (
	CryptNone   CryptSet = 0
	CryptWEP    CryptSet = 1 << 0
	CryptLayer3 CryptSet = 1 << 1
	CryptWEP40  CryptSet = 1 << 2
	CryptWEP104 CryptSet = 1 << 3
	CryptTKIP   CryptSet = 1 << 4
	CryptWPA    CryptSet = 1 << 5
	CryptPSK    CryptSet = 1 << 6
	CryptAESOCB CryptSet = 1 << 7
	CryptAESCCM CryptSet = 1 << 8
	CryptLEAP   CryptSet = 1 << 9
	CryptTTLS   CryptSet = 1 << 10
	CryptTLS    CryptSet = 1 << 11
	CryptPEAP   CryptSet = 1 << 12
	CryptISAKMP CryptSet = 1 << 13
	CryptPPTP   CryptSet = 1 << 14
)

// IPType is how an address range was inferred. FactoryGuess and Group are
// sentinels: only values strictly between them carry a usable guess.
type IPType int

const (
	IPUnknown IPType = iota
	IPFactoryGuess
	IPUDPTCP
	IPARP
	IPDHCP
	IPGroup
)

// Guessed reports whether the type lies inside the usable sentinel range.
func (t IPType) Guessed() bool {
	return t > IPFactoryGuess && t < IPGroup
}

type IPData struct {
	Type      IPType
	AddrBlock netip.Addr
	Netmask   netip.Addr
	Gateway   netip.Addr
}

// GPSData is the location aggregate. The Agg* sums are left undivided.
type GPSData struct {
	Valid bool

	MinLat, MinLon, MinAlt, MinSpd float64
	MaxLat, MaxLon, MaxAlt, MaxSpd float64

	PeakLat, PeakLon, PeakAlt float64

	AggLat, AggLon, AggAlt int64
	AggPoints              uint64
}

// Traffic counters shared by networks and clients.
type Traffic struct {
	LLCPackets   int
	DataPackets  int
	CryptPackets int
	Fragments    int
	Retries      int
	DataSize     uint64
}

type Network struct {
	BSSID     macaddr.MAC
	FirstSeen time.Time
	LastSeen  time.Time
	Type      NetworkType

	SSID        string
	BeaconSSIDs map[uint32]string
	SSIDCloaked bool
	BeaconInfo  string

	Channel     int
	MaxRate     float64
	MaxSeenRate float64
	Carriers    CarrierSet
	Encodings   EncodingSet
	Crypt       CryptSet

	Traffic
	GPS GPSData
	IP  IPData

	BSSTimestamp uint64
	CDPDevice    string
	CDPPort      string
}

type Client struct {
	MAC       macaddr.MAC
	BSSID     macaddr.MAC
	FirstSeen time.Time
	LastSeen  time.Time
	Type      ClientType

	Channel     int
	MaxSeenRate float64
	Carriers    CarrierSet
	Encodings   EncodingSet
	Crypt       CryptSet

	Traffic
	GPS GPSData
	IP  IPData

	CDPDevice string
	CDPPort   string
}

func (n *Network) clone() *Network {
	c := *n
	if n.BeaconSSIDs != nil {
		c.BeaconSSIDs = make(map[uint32]string, len(n.BeaconSSIDs))
		for k, v := range n.BeaconSSIDs {
			c.BeaconSSIDs[k] = v
		}
	}
	return &c
}

func (c *Client) clone() *Client {
	cc := *c
	return &cc
}
