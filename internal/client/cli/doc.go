// Package cli provides the interactive BiteBoxd command-line client.
//
// It wires configuration, the local session database, the backend client and
// an interactive REPL. Every screen the user opens goes through the route
// gate first, so protected screens are only shown with a live session.
//
// Key features:
//   - Register / Login / Logout, session restored on start
//   - Personal recipes: list, show, new, edit, delete, photo upload
//   - Public feed with filters
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
