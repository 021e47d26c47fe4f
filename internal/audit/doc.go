// Package audit transforms freshly resolved archive trees before they are
// materialized. Auditors are chained: the constraint auditor settles one
// version per logical dependency, and the packaged auditor then prunes every
// subtree whose root is already built into the host binary.
//
// Auditors never perform I/O. Every failure is a configuration error that
// aborts the launch.
package audit
