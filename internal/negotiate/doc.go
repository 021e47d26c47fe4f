// Package negotiate maps descriptors to version-insensitive classification
// keys. Each dependency ecosystem contributes a Negotiator, registered in a
// Registry under the descriptor kind it understands.
package negotiate
