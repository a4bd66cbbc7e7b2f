// Package sqlite provides SQLite-backed persistence for intake members.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/drivegate/drivegate/internal/platform/storage/sqlitemigrate"
	"github.com/drivegate/drivegate/internal/services/intake/storage"
	"github.com/drivegate/drivegate/internal/services/intake/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing intake storage.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates an intake SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// UpsertMember inserts or rewrites the member row keyed by Telegram user id.
// Rewrites keep the original row id and created_at, so roster order stays
// pinned to a member's first completion.
func (s *Store) UpsertMember(ctx context.Context, member storage.Member) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if member.TelegramID == 0 {
		return fmt.Errorf("telegram id is required")
	}
	member.Phone = strings.TrimSpace(member.Phone)
	if member.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	member.Team = strings.TrimSpace(member.Team)
	if member.Team == "" {
		return fmt.Errorf("team is required")
	}
	member.Email = strings.TrimSpace(member.Email)
	if member.Email == "" {
		return fmt.Errorf("email is required")
	}

	now := time.Now().UTC()
	createdAt := member.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := member.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	granted := 0
	if member.Granted {
		granted = 1
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO members (telegram_id, first_name, last_name, username, phone, team, email, granted, grant_error, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(telegram_id) DO UPDATE SET
		     first_name = excluded.first_name,
		     last_name = excluded.last_name,
		     username = excluded.username,
		     phone = excluded.phone,
		     team = excluded.team,
		     email = excluded.email,
		     granted = excluded.granted,
		     grant_error = excluded.grant_error,
		     updated_at = excluded.updated_at`,
		member.TelegramID,
		member.FirstName,
		member.LastName,
		member.Username,
		member.Phone,
		member.Team,
		member.Email,
		granted,
		member.GrantError,
		createdAt.Format(timeFormat),
		updatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

// GetMember loads a member row by Telegram user id.
func (s *Store) GetMember(ctx context.Context, telegramID int64) (storage.Member, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Member{}, fmt.Errorf("storage is not configured")
	}
	if telegramID == 0 {
		return storage.Member{}, fmt.Errorf("telegram id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT telegram_id, first_name, last_name, username, phone, team, email, granted, grant_error, created_at, updated_at
		 FROM members
		 WHERE telegram_id = ?`,
		telegramID,
	)
	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Member{}, storage.ErrNotFound
		}
		return storage.Member{}, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

// CountByTeam aggregates member totals and grant successes per team.
func (s *Store) CountByTeam(ctx context.Context) (map[string]storage.TeamCount, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT team, COUNT(*), SUM(granted)
		 FROM members
		 GROUP BY team`,
	)
	if err != nil {
		return nil, fmt.Errorf("count by team: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]storage.TeamCount)
	for rows.Next() {
		var count storage.TeamCount
		if err := rows.Scan(&count.Team, &count.Total, &count.Granted); err != nil {
			return nil, fmt.Errorf("scan team count: %w", err)
		}
		counts[count.Team] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team counts: %w", err)
	}
	return counts, nil
}

// EmailsByTeam lists member emails for a team in record creation order,
// using the autoincrement row id so same-second writes cannot reorder.
// Grant failures are included; the roster is not gated on grant success.
func (s *Store) EmailsByTeam(ctx context.Context, team string) ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, fmt.Errorf("team is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT email FROM members WHERE team = ? ORDER BY id ASC`,
		team,
	)
	if err != nil {
		return nil, fmt.Errorf("emails by team: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emails: %w", err)
	}
	return emails, nil
}

// ListMembers returns every member row in record creation order.
func (s *Store) ListMembers(ctx context.Context) ([]storage.Member, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT telegram_id, first_name, last_name, username, phone, team, email, granted, grant_error, created_at, updated_at
		 FROM members
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []storage.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (storage.Member, error) {
	var member storage.Member
	var granted int64
	var createdAt, updatedAt string
	if err := row.Scan(
		&member.TelegramID,
		&member.FirstName,
		&member.LastName,
		&member.Username,
		&member.Phone,
		&member.Team,
		&member.Email,
		&granted,
		&member.GrantError,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Member{}, err
	}
	member.Granted = granted != 0
	member.CreatedAt = parseTime(createdAt)
	member.UpdatedAt = parseTime(updatedAt)
	return member, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

var _ storage.Store = (*Store)(nil)
