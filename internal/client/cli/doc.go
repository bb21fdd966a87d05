// Package cli provides the interactive MindCare command-line client.
//
// It wires configuration, the persisted session, the API client, domain
// stores and services behind a REPL. Every page is opened through the route
// guard, and commands that change data are checked against the page they
// belong to.
//
// Key features:
//   - Login / Register / Logout, with the session restored at startup
//   - Role-specific pages: dashboard, appointments, programs, surveys,
//     children, schedule, user and content management, articles
//   - Booking, cancelling and updating appointments
//   - Optimistic program enrollment
//   - Taking surveys and reading notifications
//
// When the API client ends the session after a failed token refresh, the
// user is told and moved to the login page.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Navigate and runREPL for details.
package cli
