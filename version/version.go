// Package version contains the symbolic version of the server. It is set at
// build time via -ldflags and recorded in every archived estimate.
package version

// Version is the symbolic version of the running binary, e.g. "v1.0".
var Version = "dev"
