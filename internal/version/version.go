// ABOUTME: Version and product identification constants
// ABOUTME: Reported by the CLI version flag
package version

const (
	Version      = "0.3.0"
	Product      = "swfsound"
	Manufacturer = "Resonate Protocol"
)
