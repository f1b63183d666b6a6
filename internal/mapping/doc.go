// Package mapping provides the YAML schema, parsing, directive collection
// and validation of adapter declarations.
//
// Declarations are written by hand in a YAML file, or attached to delegator
// types with //accessor: directives. Both forms produce the same AccessorDef
// records, which the plan package resolves against the type graph.
//
// # Schema Overview
//
//	version: "1"
//	package: accessors
//	accessors:
//	  - source: store.Order          # "*" prefix is accepted and ignored
//	    destination: warehouse.Order # interface or named struct
//	    delegator: warehouse.OrderAudit
//	    constructor: NewOrderAudit   # default: New<Delegator>, delegator's package
//	    initialize: Open             # delegator method run by AccessorInitialize
//	    terminate: Close             # delegator method run by AccessorTerminate
//	    key: audited-order           # extra registration key
//	    priority: 10                 # lower installs first; "lowest" / "highest"
//	  - source: store.Customer
//	    destination: warehouse.Customer
//	    delegator: warehouse.CustomerMirror
//	    transparent: true            # forward to the delegator only
//
// # Type references
//
// Types are written fully qualified ("accessor-generator/store.Order"), by
// package name ("store.Order"), or by bare name when unique ("Order").
//
// # Directives
//
// A delegator declares itself with the same keys on its doc comment:
//
//	//accessor:delegator source=store.Order destination=warehouse.Order initialize=Open
//	type OrderAudit struct { ... }
//
// A type can declare a delegator-less pair with //accessor:adapter:
//
//	//accessor:adapter destination=warehouse.Order
//	type Order struct { ... }
package mapping
