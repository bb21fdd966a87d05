// Package storage is the durable client storage: a small key/value table in a
// local SQLite database that survives restarts of the client.
//
// It holds only session material (access token, refresh token and the JSON
// auth-state blob); domain records are never persisted.
//
// # Implementations
//
//   - SQLiteRepository: plain values over database/sql.
//   - SealedRepository: decorator that encrypts values with cryptox before
//     delegating, enabled when a storage secret is configured.
//
// # Contract
//
// Get returns (nil, nil) for a missing key. SetMany and DeleteMany are atomic.
//
// Typical usage
//
//	db, err := storage.Open(ctx, "mindcare.db")
//	repo := storage.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "token", []byte(tok))
package storage
