// Package client contains the client-side building blocks that talk to the
// Openticket backend and to the local session store.
//
// # Overview
//
//  1. A transport contract (see the Client interface) covering status,
//     setup, login, tickets, comments, labels and assignments.
//  2. HTTPClient, the REST implementation. It injects the session token
//     header and maps HTTP answers to sentinel errors.
//  3. InitDatabase / RunMigrations, which open the SQLite session store and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *APIError
// values that unwrap to ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrValidation or ErrUnexpectedStatus, so callers can use errors.Is and
// errors.As.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call accepts a
// context.Context and honors cancellation.
package client
