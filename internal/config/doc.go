// Package config manages user-level settings stored at
// ~/.extframework/config.yaml. Every key can also be set from the
// environment with the EXTFRAMEWORK_ prefix.
package config
