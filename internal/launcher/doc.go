// Package launcher ties the launcher components into one session: it owns
// the logged-in user, decides what the primary action is, drives installs,
// and starts the game with the session's identity.
//
// Callers with a UI thread inject a Dispatcher; every callback the
// launcher makes on behalf of background work goes through it. The
// command-line front end uses Immediate.
package launcher
