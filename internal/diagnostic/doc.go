// Package diagnostic provides structured warnings, errors, and
// explanations for the accessor generator.
//
// Key capabilities:
//   - Ambiguous match reports listing every candidate
//   - Unmatched destination method warnings with near-miss suggestions
//   - Configuration errors (missing types, constructors, lifecycle methods)
package diagnostic
