// Package gen renders resolved adapter plans as Go source.
//
// Every pair becomes one file holding the adapter struct, its constructor,
// the accessor capability methods and one forwarding method per planned
// forwarder. Interface methods the plan could not back panic with
// accessor.ErrNotForwarded. A registry file exposes Declarations, the input
// of accessor.Repository.Scan.
//
// Rendering uses text/template followed by go/format; source that fails to
// format is kept in a .unformatted.go sidecar for inspection.
package gen
