// File: internal/version/version.go (complete file)

package version

import "fmt"

// These values are intended to be set at build time using -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	// Major, Minor and Tiny make up the version triple printed in report mastheads.
	Major = "0"
	Minor = "1"
	Tiny  = "0"
)

const (
	Product = "Kismet"
	URL     = "http://www.kismetwireless.net"
)

// Triple returns "Major.Minor.Tiny".
func Triple() string {
	return fmt.Sprintf("%s.%s.%s", Major, Minor, Tiny)
}

// String is the one-line form printed by the version command.
func String() string {
	return fmt.Sprintf("nettxt %s [%s] (commit=%s build_date=%s)", Version, Triple(), Commit, BuildDate)
}
