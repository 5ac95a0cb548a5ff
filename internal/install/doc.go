// Package install knows where the game lives on disk. It persists the
// user-chosen install root, finds the game executable under a root, and
// tracks whether a download or install is running.
//
// The install state is never cached across queries. Every State call probes
// the filesystem again, so an executable deleted behind the launcher's back
// turns the state back into NotInstalled.
package install
