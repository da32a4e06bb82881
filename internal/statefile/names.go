// File: internal/statefile/names.go (complete file)

package statefile

import (
	"fmt"
	"strings"

	"github.com/baptistax/nettxt/internal/tracker"
)

var networkTypes = map[string]tracker.NetworkType{
	"":               tracker.NetworkUnknown,
	"infrastructure": tracker.NetworkInfrastructure,
	"ap":             tracker.NetworkInfrastructure,
	"ad-hoc":         tracker.NetworkAdHoc,
	"adhoc":          tracker.NetworkAdHoc,
	"probe":          tracker.NetworkProbe,
	"data":           tracker.NetworkData,
	"turbocell":      tracker.NetworkTurbocell,
	"unknown":        tracker.NetworkUnknown,
	"removed":        tracker.NetworkRemoved,
}

var clientTypes = map[string]tracker.ClientType{
	"":            tracker.ClientUnknown,
	"fromds":      tracker.ClientFromDS,
	"tods":        tracker.ClientToDS,
	"interds":     tracker.ClientInterDS,
	"established": tracker.ClientEstablished,
	"ad-hoc":      tracker.ClientAdHoc,
	"adhoc":       tracker.ClientAdHoc,
	"unknown":     tracker.ClientUnknown,
	"removed":     tracker.ClientRemoved,
}

var carriers = map[string]tracker.Carrier{
	"802.11b":  tracker.Carrier80211b,
	"802.11b+": tracker.Carrier80211bPlus,
	"802.11a":  tracker.Carrier80211a,
	"802.11g":  tracker.Carrier80211g,
	"fhss":     tracker.Carrier80211FHSS,
	"dsss":     tracker.Carrier80211DSSS,
}

var encodings = map[string]tracker.Encoding{
	"cck":  tracker.EncodingCCK,
	"pbcc": tracker.EncodingPBCC,
	"ofdm": tracker.EncodingOFDM,
}

var cryptBits = map[string]tracker.CryptSet{
	"none":    tracker.CryptNone,
	"wep":     tracker.CryptWEP,
	"layer3":  tracker.CryptLayer3,
	"wep40":   tracker.CryptWEP40,
	"wep104":  tracker.CryptWEP104,
	"tkip":    tracker.CryptTKIP,
	"wpa":     tracker.CryptWPA,
	"psk":     tracker.CryptPSK,
	"aes-ocb": tracker.CryptAESOCB,
	"aes-ccm": tracker.CryptAESCCM,
	"leap":    tracker.CryptLEAP,
	"ttls":    tracker.CryptTTLS,
	"tls":     tracker.CryptTLS,
	"peap":    tracker.CryptPEAP,
	"isakmp":  tracker.CryptISAKMP,
	"pptp":    tracker.CryptPPTP,
}

var ipTypes = map[string]tracker.IPType{
	"":        tracker.IPUnknown,
	"unknown": tracker.IPUnknown,
	"factory": tracker.IPFactoryGuess,
	"udptcp":  tracker.IPUDPTCP,
	"udp/tcp": tracker.IPUDPTCP,
	"arp":     tracker.IPARP,
	"dhcp":    tracker.IPDHCP,
	"group":   tracker.IPGroup,
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseNetworkType(s string) (tracker.NetworkType, error) {
	if t, ok := networkTypes[norm(s)]; ok {
		return t, nil
	}
	return tracker.NetworkUnknown, fmt.Errorf("unknown network type %q", s)
}

func parseClientType(s string) (tracker.ClientType, error) {
	if t, ok := clientTypes[norm(s)]; ok {
		return t, nil
	}
	return tracker.ClientUnknown, fmt.Errorf("unknown client type %q", s)
}

func parseIPType(s string) (tracker.IPType, error) {
	if t, ok := ipTypes[norm(s)]; ok {
		return t, nil
	}
	return tracker.IPUnknown, fmt.Errorf("unknown ip type %q", s)
}

type radioSets struct {
	carriers  tracker.CarrierSet
	encodings tracker.EncodingSet
	crypt     tracker.CryptSet
}

func parseRadio(carrierNames, encodingNames, cryptNames []string) (radioSets, error) {
	var out radioSets
	for _, s := range carrierNames {
		c, ok := carriers[norm(s)]
		if !ok {
			return out, fmt.Errorf("unknown carrier %q", s)
		}
		out.carriers |= 1 << c
	}
	for _, s := range encodingNames {
		e, ok := encodings[norm(s)]
		if !ok {
			return out, fmt.Errorf("unknown encoding %q", s)
		}
		out.encodings |= 1 << e
	}
	for _, s := range cryptNames {
		bit, ok := cryptBits[norm(s)]
		if !ok {
			return out, fmt.Errorf("unknown crypt %q", s)
		}
		out.crypt |= bit
	}
	return out, nil
}
