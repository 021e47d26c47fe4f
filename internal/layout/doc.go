// Package layout names the on-disk location of artifacts. Maven is the
// default naming rule; Override redirects any rule into an installation
// scoped root so extension artifacts stay segregated per target.
package layout
