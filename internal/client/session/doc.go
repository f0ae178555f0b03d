// Package session implements the bootstrap gate of the Openticket client.
//
// A Gate fetches the backend status once, caches it for the lifetime of the
// application and decides which UI branch is mounted:
//
//	Loading ──fetch ok──▶ SetupRequired ──CompleteSetup──▶ LoginRequired
//	   │                                                    │      ▲
//	   │                                       Authenticate │      │ SignOut
//	   │                                                    ▼      │
//	   └──fetch failed──▶ Error                          Authenticated
//
// A fetch answering setup=true goes straight to LoginRequired or
// Authenticated. The mapping itself is the pure function Resolve.
//
// Reading gated data (Status, SetupComplete, User) where it is not
// available returns a *ScopeError; so does FromContext on a context without
// a gate.
package session
