// Package storage defines persistence contracts for completed intake records.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested member record is missing.
var ErrNotFound = errors.New("member not found")

// Member is one completed intake. A row exists only after the phone, team
// and email steps all finished; partial progress stays in the in-memory
// session and is never persisted.
type Member struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
	Phone      string
	Team       string
	Email      string
	Granted    bool
	GrantError string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TeamCount aggregates member totals for one team.
type TeamCount struct {
	Team    string
	Total   int
	Granted int
}

// Store is the contract for member persistence.
//
// UpsertMember is keyed by Telegram user id: re-running intake for the same
// account rewrites the existing row instead of inserting a duplicate.
type Store interface {
	Close() error
	UpsertMember(ctx context.Context, member Member) error
	GetMember(ctx context.Context, telegramID int64) (Member, error)
	CountByTeam(ctx context.Context) (map[string]TeamCount, error)
	EmailsByTeam(ctx context.Context, team string) ([]string, error)
	ListMembers(ctx context.Context) ([]Member, error)
}
