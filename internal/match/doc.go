// Package match explains near misses of the forwarding matcher.
//
// Forwarding itself only accepts exact signature equality. When a
// destination method has no exact counterpart, this package ranks the
// source and delegator methods by normalized name similarity and signature
// closeness, so diagnostics can say "did you mean TotalCents() int64?".
package match
