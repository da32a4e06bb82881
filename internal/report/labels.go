// File: internal/report/labels.go (complete file)

package report

import "github.com/baptistax/nettxt/internal/tracker"

func networkTypeLabel(t tracker.NetworkType) string {
	switch t {
	case tracker.NetworkInfrastructure:
		return "infrastructure"
	case tracker.NetworkAdHoc:
		return "ad-hoc"
	case tracker.NetworkProbe:
		return "probe"
	case tracker.NetworkData:
		return "data"
	case tracker.NetworkTurbocell:
		return "turbocell"
	default:
		return "unknown"
	}
}

func clientTypeLabel(t tracker.ClientType) string {
	switch t {
	case tracker.ClientFromDS:
		return "fromds"
	case tracker.ClientToDS:
		return "tods"
	case tracker.ClientInterDS:
		return "interds"
	case tracker.ClientEstablished:
		return "established"
	case tracker.ClientAdHoc:
		return "ad-hoc"
	default:
		return "unknown"
	}
}

func ipTypeLabel(t tracker.IPType) string {
	switch t {
	case tracker.IPUDPTCP:
		return "UDP/TCP"
	case tracker.IPARP:
		return "ARP"
	case tracker.IPDHCP:
		return "DHCP"
	default:
		return "Unknown"
	}
}

// Decode tables are listed in ascending bit order; output follows this order.
var carrierLabels = []struct {
	c     tracker.Carrier
	label string
}{
	{tracker.Carrier80211b, "IEEE 802.11b"},
	{tracker.Carrier80211bPlus, "IEEE 802.11b+"},
	{tracker.Carrier80211a, "IEEE 802.11a"},
	{tracker.Carrier80211g, "IEEE 802.11g"},
	{tracker.Carrier80211FHSS, "IEEE 802.11 FHSS"},
	{tracker.Carrier80211DSSS, "IEEE 802.11 DSSS"},
}

var encodingLabels = []struct {
	e     tracker.Encoding
	label string
}{
	{tracker.EncodingCCK, "CCK"},
	{tracker.EncodingPBCC, "PBCC"},
	{tracker.EncodingOFDM, "OFDM"},
}

var cryptLabels = []struct {
	bit   tracker.CryptSet
	label string
}{
	{tracker.CryptWEP, "WEP"},
	{tracker.CryptLayer3, "Layer3"},
	{tracker.CryptWEP40, "WEP40"},
	{tracker.CryptWEP104, "WEP104"},
	{tracker.CryptTKIP, "TKIP"},
	{tracker.CryptWPA, "WPA"},
	{tracker.CryptPSK, "PSK"},
	{tracker.CryptAESOCB, "AES-OCB"},
	{tracker.CryptAESCCM, "AES-CCM"},
	{tracker.CryptLEAP, "LEAP"},
	{tracker.CryptTTLS, "TTLS"},
	{tracker.CryptTLS, "TLS"},
	{tracker.CryptPEAP, "PEAP"},
	{tracker.CryptISAKMP, "ISAKMP"},
	{tracker.CryptPPTP, "PPTP"},
}

func carrierNames(set tracker.CarrierSet) []string {
	var out []string
	for _, c := range carrierLabels {
		if set.Has(c.c) {
			out = append(out, c.label)
		}
	}
	return out
}

func encodingNames(set tracker.EncodingSet) []string {
	var out []string
	for _, e := range encodingLabels {
		if set.Has(e.e) {
			out = append(out, e.label)
		}
	}
	return out
}

// cryptNames returns ["None"] for an empty set, otherwise one label per set bit.
func cryptNames(set tracker.CryptSet) []string {
	if set == tracker.CryptNone {
		return []string{"None"}
	}
	var out []string
	for _, c := range cryptLabels {
		if set&c.bit != 0 {
			out = append(out, c.label)
		}
	}
	return out
}
