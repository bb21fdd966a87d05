// Package common contains shared constants and sentinel errors used across
// MindCare client components.
package common

// HTTP header names set on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Keys of the durable client storage.
const (
	StorageKeyToken        = "token"
	StorageKeyRefreshToken = "refreshToken"
	StorageKeyAuthState    = "auth-storage"
	StorageKeySalt         = "storage-salt"
)
