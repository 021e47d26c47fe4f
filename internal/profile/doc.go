// Package profile reads launch profiles: TOML files holding the defaults of
// a launch so they need not be repeated on every command line.
//
//	main_class = "com.example.Main"
//	classpath  = ["app", "lib/util.zip"]
//	args       = ["--verbose"]
//	version    = "extframework-1.0"
//
//	[[extensions]]
//	descriptor = "dev.ext:tweaks:1.0"
//	repository = "local@repo"
//
// Relative paths are resolved against the profile's directory.
package profile
