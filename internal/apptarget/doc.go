// Package apptarget adapts the application being launched into source units
// that sit after the extension units in the composed namespace.
//
// The launch command uses Classpath. Delegate is for embedding hosts that
// already run the application under a live loader.
package apptarget
