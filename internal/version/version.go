// ABOUTME: Version information for the harmony tools
// ABOUTME: Printed by --version and recorded in extraction manifests
package version

const (
	// Version is the release of the extraction tools
	Version = "0.3.0"

	// Product names the tool suite
	Product = "harmony"

	// Manufacturer identifies the project the tools ship with
	Manufacturer = "pokemonsnap-splat"
)

// String returns "<product> <version>"
func String() string {
	return Product + " " + Version
}
