// File: internal/filter/filter.go (complete file)

package filter

import (
	"fmt"
	"strings"

	"github.com/baptistax/nettxt/internal/macaddr"
)

// Filter decides which records are left out of an export.
//
// Expressions look like
//
//	BSSID(AA:BB:CC:DD:EE:FF, !00:11:22:00:00:00/FF:FF:FF:00:00:00)
//	SOURCE(...) DEST(...) ANY(...)
//
// A "!" term excludes matching addresses. If a block has at least one
// positive term, addresses matching none of them are excluded too.
type Filter struct {
	bssid  block
	source block
	dest   block
}

type term struct {
	addr   macaddr.MAC
	mask   macaddr.MAC
	negate bool
}

type block struct {
	terms []term
}

func (b block) excludes(m macaddr.MAC) bool {
	if len(b.terms) == 0 {
		return false
	}

	positive, hit := false, false
	for _, t := range b.terms {
		if !t.negate {
			positive = true
		}
		if m.MatchMask(t.addr, t.mask) {
			if t.negate {
				return true
			}
			hit = true
		}
	}
	return positive && !hit
}

// Parse builds a filter from zero or more expressions. An empty list yields
// a filter that excludes nothing.
func Parse(exprs []string) (*Filter, error) {
	f := &Filter{}
	for _, e := range exprs {
		if err := f.add(e); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ShouldExclude reports whether a record with these addresses is filtered
// out. Zero source/dest addresses skip their blocks.
func (f *Filter) ShouldExclude(bssid, source, dest macaddr.MAC) bool {
	if f == nil {
		return false
	}
	if f.bssid.excludes(bssid) {
		return true
	}
	if !source.IsZero() && f.source.excludes(source) {
		return true
	}
	if !dest.IsZero() && f.dest.excludes(dest) {
		return true
	}
	return false
}

// Empty reports whether no expression was configured.
func (f *Filter) Empty() bool {
	return f == nil || len(f.bssid.terms)+len(f.source.terms)+len(f.dest.terms) == 0
}

func (f *Filter) add(expr string) error {
	rest := strings.TrimSpace(expr)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return fmt.Errorf("filter %q: expected NAME(...)", expr)
		}
		closeIdx := strings.IndexByte(rest, ')')
		if closeIdx < open {
			return fmt.Errorf("filter %q: unbalanced parentheses", expr)
		}

		name := strings.ToUpper(strings.TrimSpace(rest[:open]))
		terms, err := parseTerms(rest[open+1 : closeIdx])
		if err != nil {
			return fmt.Errorf("filter %q: %w", expr, err)
		}

		switch name {
		case "BSSID":
			f.bssid.terms = append(f.bssid.terms, terms...)
		case "SOURCE":
			f.source.terms = append(f.source.terms, terms...)
		case "DEST":
			f.dest.terms = append(f.dest.terms, terms...)
		case "ANY":
			f.bssid.terms = append(f.bssid.terms, terms...)
			f.source.terms = append(f.source.terms, terms...)
			f.dest.terms = append(f.dest.terms, terms...)
		default:
			return fmt.Errorf("filter %q: unknown block %q", expr, name)
		}

		rest = strings.TrimLeft(rest[closeIdx+1:], " \t,")
	}
	return nil
}

func parseTerms(s string) ([]term, error) {
	var out []term
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		t := term{mask: macaddr.Broadcast}
		if strings.HasPrefix(raw, "!") {
			t.negate = true
			raw = strings.TrimSpace(raw[1:])
		}

		addr, mask, hasMask := strings.Cut(raw, "/")
		a, err := macaddr.Parse(addr)
		if err != nil {
			return nil, err
		}
		t.addr = a
		if hasMask {
			m, err := macaddr.Parse(mask)
			if err != nil {
				return nil, err
			}
			t.mask = m
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty address list")
	}
	return out, nil
}
