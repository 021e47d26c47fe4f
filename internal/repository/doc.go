// Package repository parses the "type@location" repository settings given
// alongside each requested extension.
package repository
