// Package cli assembles the Openticket terminal client.
//
// NewApp prepares the data directory, the log file and the local session
// database, then wires the REST client, the services and the session gate.
// App.Run restores a persisted session, starts a background connectivity
// watcher and blocks in the terminal UI until the user quits.
package cli
