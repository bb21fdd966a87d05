// Package client is the REST client of the MindCare API.
//
// # Overview
//
// BaseClient wraps an *http.Client with the API base URL, a fixed timeout and
// default headers, and implements the token lifecycle:
//
//  1. Every request except the public auth calls (login, register, refresh)
//     carries "Authorization: Bearer <token>" when the session holds a
//     non-expired access token. An expired token is discarded first and the
//     request goes out unauthenticated.
//  2. A 401 or 403 triggers one refresh with the stored refresh token and a
//     single replay of the original request. Concurrent failures share one
//     refresh call. If the refresh fails the session is cleared and the
//     logout hooks fire.
//
// Resource clients (Auth, Appointments, Programs, ...) sit on top of
// BaseClient and decode responses into validated models.
//
// # Error Handling
//
// Non-2xx responses become *APIError, classified with Kind. Transport
// failures wrap ErrNetwork. Message turns any of them into text fit for the
// user.
package client
