// Package release fetches what the backend says about the current game
// release: the version string and the news feed. Neither call ever fails
// from the caller's point of view. An unreachable backend yields
// UnknownVersion and a single welcome entry.
package release
