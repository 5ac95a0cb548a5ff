// Package userdata resolves where the launcher keeps its files: the
// credential vault and the install-root setting under ~/.bitfighters/, and
// the default install root in the user's Documents folder.
package userdata
