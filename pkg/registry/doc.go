// Package registry provides the typed capability catalog: named entries
// combining an executable body with declared parameter and return
// descriptors, and a process-scoped registry mapping unique names to entries.
//
// The intended lifecycle is registration at process start, then read-only
// use: hosts enumerate entries for discovery and the dispatcher looks them up
// by name for invocation. Duplicate names fail registration rather than
// overwrite, and enumeration order is the order of first registration.
//
// Entry.Invoke enforces the invocation contract: defaults are substituted,
// missing and undeclared arguments are rejected, present arguments are
// validated against their descriptors, and only then does the body run. The
// body's result is validated against the return descriptor on the way out,
// surfacing author defects separately from caller errors.
package registry
