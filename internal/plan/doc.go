// Package plan resolves accessor declarations into adapter plans: the
// resolved types, delegator constructor, construction mode and forwarding
// set of every pair, plus the diagnostics the generator reports.
//
// Forwarding is planned with accessor.PlanForwarding, the same rules the
// runtime synthesizer applies, over method descriptors extracted with go/types.
package plan
