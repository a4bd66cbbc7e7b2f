// Package intake owns the member onboarding conversation.
//
// It drives a per-user state machine (phone share, team choice, email,
// folder grant) over in-memory sessions, persists completed records, and
// exposes the admin query surface over those records. Transport concerns
// stay outside: the package consumes tagged events and produces replies.
package intake
