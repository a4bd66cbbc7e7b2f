package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/drivegate/drivegate/internal/services/intake/storage"
	_ "modernc.org/sqlite"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	store := openTestStore(t)
	_ = store

	path := filepath.Join(t.TempDir(), "intake.db")
	second, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := second.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	var name string
	row := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = 'members'")
	if err := row.Scan(&name); err != nil {
		t.Fatalf("expected members table: %v", err)
	}
}

func TestUpsertMemberRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	member := storage.Member{
		TelegramID: 42,
		FirstName:  "Amira",
		Username:   "amira",
		Phone:      "+15550001",
		Team:       "Team A",
		Email:      "a@b.com",
		Granted:    true,
	}
	if err := store.UpsertMember(ctx, member); err != nil {
		t.Fatalf("upsert member: %v", err)
	}

	loaded, err := store.GetMember(ctx, 42)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if loaded.Phone != "+15550001" {
		t.Fatalf("phone = %q, want %q", loaded.Phone, "+15550001")
	}
	if loaded.Team != "Team A" {
		t.Fatalf("team = %q, want %q", loaded.Team, "Team A")
	}
	if loaded.Email != "a@b.com" {
		t.Fatalf("email = %q, want %q", loaded.Email, "a@b.com")
	}
	if !loaded.Granted {
		t.Fatal("expected granted member")
	}
	if loaded.CreatedAt.IsZero() || loaded.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestUpsertMemberIsIdempotentPerKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := storage.Member{
		TelegramID: 7,
		Phone:      "+15550002",
		Team:       "Team A",
		Email:      "old@b.com",
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.UpsertMember(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := first
	second.Email = "new@b.com"
	second.Team = "Team B"
	second.CreatedAt = time.Time{}
	if err := store.UpsertMember(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	members, err := store.ListMembers(ctx)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected single row after re-running intake, got %d", len(members))
	}
	if members[0].Email != "new@b.com" {
		t.Fatalf("email = %q, want rewrite to %q", members[0].Email, "new@b.com")
	}
	if !members[0].CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at = %v, want original %v preserved", members[0].CreatedAt, first.CreatedAt)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetMember(context.Background(), 999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountByTeamPartitionsAllMembers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seedMember(t, store, 1, "Team A", "a1@b.com", true)
	seedMember(t, store, 2, "Team A", "a2@b.com", false)
	seedMember(t, store, 3, "Team B", "b1@b.com", true)

	counts, err := store.CountByTeam(ctx)
	if err != nil {
		t.Fatalf("count by team: %v", err)
	}

	total := 0
	for _, count := range counts {
		total += count.Total
	}
	if total != 3 {
		t.Fatalf("expected counts to cover all 3 members, got %d", total)
	}
	if counts["Team A"].Total != 2 || counts["Team A"].Granted != 1 {
		t.Fatalf("Team A counts = %+v, want total 2 granted 1", counts["Team A"])
	}
	if counts["Team B"].Total != 1 || counts["Team B"].Granted != 1 {
		t.Fatalf("Team B counts = %+v, want total 1 granted 1", counts["Team B"])
	}
}

func TestEmailsByTeamKeepsInsertionOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, email := range []string{"first@b.com", "second@b.com", "third@b.com"} {
		member := storage.Member{
			TelegramID: int64(100 + i),
			Phone:      "+1555",
			Team:       "Team A",
			Email:      email,
			Granted:    i%2 == 0,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.UpsertMember(ctx, member); err != nil {
			t.Fatalf("seed member %d: %v", i, err)
		}
	}

	emails, err := store.EmailsByTeam(ctx, "Team A")
	if err != nil {
		t.Fatalf("emails by team: %v", err)
	}
	want := []string{"first@b.com", "second@b.com", "third@b.com"}
	if len(emails) != len(want) {
		t.Fatalf("expected %d emails, got %d", len(want), len(emails))
	}
	for i := range want {
		if emails[i] != want[i] {
			t.Fatalf("emails[%d] = %q, want %q", i, emails[i], want[i])
		}
	}
}

func TestEmailsByTeamOrderSurvivesTimestampTies(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Same second, first write on the whole-second boundary and the next
	// with fractional nanoseconds, telegram ids descending. Write order
	// must win over both timestamp text and key order.
	second := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	writes := []struct {
		id        int64
		email     string
		createdAt time.Time
	}{
		{30, "first@b.com", second},
		{20, "second@b.com", second.Add(250 * time.Millisecond)},
		{10, "third@b.com", second.Add(500 * time.Millisecond)},
	}
	for _, write := range writes {
		member := storage.Member{
			TelegramID: write.id,
			Phone:      "+1555",
			Team:       "Team A",
			Email:      write.email,
			CreatedAt:  write.createdAt,
		}
		if err := store.UpsertMember(ctx, member); err != nil {
			t.Fatalf("seed member %d: %v", write.id, err)
		}
	}

	emails, err := store.EmailsByTeam(ctx, "Team A")
	if err != nil {
		t.Fatalf("emails by team: %v", err)
	}
	want := []string{"first@b.com", "second@b.com", "third@b.com"}
	if len(emails) != len(want) {
		t.Fatalf("expected %d emails, got %d", len(want), len(emails))
	}
	for i := range want {
		if emails[i] != want[i] {
			t.Fatalf("emails[%d] = %q, want %q", i, emails[i], want[i])
		}
	}

	members, err := store.ListMembers(ctx)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 3 || members[0].TelegramID != 30 || members[2].TelegramID != 10 {
		t.Fatalf("list order = %+v, want write order", members)
	}
}

func TestUpsertMemberRejectsIncompleteRecords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		member storage.Member
	}{
		{"missing id", storage.Member{Phone: "+1", Team: "Team A", Email: "a@b.com"}},
		{"missing phone", storage.Member{TelegramID: 1, Team: "Team A", Email: "a@b.com"}},
		{"missing team", storage.Member{TelegramID: 1, Phone: "+1", Email: "a@b.com"}},
		{"missing email", storage.Member{TelegramID: 1, Phone: "+1", Team: "Team A"}},
	}
	for _, tc := range cases {
		if err := store.UpsertMember(ctx, tc.member); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intake.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}

func seedMember(t *testing.T, store *Store, id int64, team, email string, granted bool) {
	t.Helper()
	member := storage.Member{
		TelegramID: id,
		Phone:      "+1555",
		Team:       team,
		Email:      email,
		Granted:    granted,
	}
	if err := store.UpsertMember(context.Background(), member); err != nil {
		t.Fatalf("seed member %d: %v", id, err)
	}
}
