// Package descriptor defines the identity of every loadable unit handled by
// the launcher: libraries, extensions, extension partitions, and the
// application itself. Descriptors are plain comparable values and are used
// as map keys throughout the pipeline.
package descriptor
