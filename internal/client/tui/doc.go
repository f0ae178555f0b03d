// Package tui is the terminal front-end of the Openticket client.
//
// The root Model asks the session gate which branch to mount (loading,
// first-run setup, login, dashboard or the terminal error view) and swaps
// the mounted branch whenever the gate moves. Only the dashboard runs under
// the gate's context scope, so it is the only part reading the signed in
// user.
//
// Network calls never run on the update loop; they are tea.Cmds whose
// results come back as messages.
package tui
