// Package logging builds the structured loggers used by the launcher.
package logging
