// Package invoke runs the entry code unit of a launch.
//
// Code units are POSIX shell scripts executed by an embedded interpreter, so
// no system shell is needed. Inside a running unit:
//
//   - positional parameters are the pass-through arguments;
//   - a relative path opened for reading (". com/example/lib.sh",
//     "< data.txt") is served from the loader's resources when one exists;
//   - a command named like a code unit ("com.example.Tool arg") runs that
//     unit with the same standard streams.
package invoke
