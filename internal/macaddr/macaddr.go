// File: internal/macaddr/macaddr.go (complete file)

package macaddr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// MAC is a 48-bit hardware address. The zero value is 00:00:00:00:00:00.
type MAC [6]byte

// Broadcast is FF:FF:FF:FF:FF:FF, also the all-ones mask.
var Broadcast = MAC{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// Parse accepts colon, dash or dot-less hex forms (AA:BB:CC:DD:EE:FF, aa-bb-..., aabbccddeeff).
func Parse(s string) (MAC, error) {
	var m MAC

	clean := strings.TrimSpace(s)
	clean = strings.NewReplacer(":", "", "-", "", ".", "").Replace(clean)
	if len(clean) != 12 {
		return m, fmt.Errorf("invalid MAC address %q", s)
	}

	for i := 0; i < 6; i++ {
		b, err := strconv.ParseUint(clean[i*2:i*2+2], 16, 8)
		if err != nil {
			return MAC{}, fmt.Errorf("invalid MAC address %q", s)
		}
		m[i] = byte(b)
	}
	return m, nil
}

// MustParse is Parse for constants in tests and tables.
func MustParse(s string) MAC {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String renders upper-case colon separated octets.
func (m MAC) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

func (m MAC) IsZero() bool {
	return m == MAC{}
}

// MatchMask reports whether m equals other on every bit set in mask.
func (m MAC) MatchMask(other, mask MAC) bool {
	for i := range m {
		if m[i]&mask[i] != other[i]&mask[i] {
			return false
		}
	}
	return true
}

// Compare orders addresses bytewise, for sorted tables.
func Compare(a, b MAC) int {
	return bytes.Compare(a[:], b[:])
}

func (m MAC) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MAC) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
