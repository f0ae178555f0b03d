// Package common contains shared constants and sentinel errors used across
// Openticket client components.
package common

// SessionTokenHeaderName is the HTTP header the backend reads the session
// token from on authenticated requests.
const SessionTokenHeaderName = "OPENTICKET-SESSION-TOKEN"

// Keys of the local metadata store.
const (
	MetadataSessionToken = "session_token"
	MetadataServerURL    = "server_url"
	MetadataUsername     = "username"
)
