// Package platform hides the few OS differences the launcher cares about:
// executable file names and Unix permission bits, which are no-ops on
// Windows.
package platform
