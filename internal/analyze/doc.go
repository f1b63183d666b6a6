// Package analyze loads Go packages and extracts what the generator needs
// to plan adapters: method sets of named types, package-level constructor
// functions and //accessor: directives.
//
// It uses golang.org/x/tools/go/packages with syntax and go/types, and
// describes methods with accessor.MethodDescriptor so that build-time and
// run-time planning share one matcher.
//
// Modifiers are derived as follows:
//   - private: unexported method name
//   - native: function declared without a body
//   - abstract: method promoted from an embedded interface field
//   - any modifier: an //accessor:<modifier> line in the method's doc comment
package analyze
