package intake

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/drivegate/drivegate/internal/services/intake/render"
	"github.com/drivegate/drivegate/internal/services/intake/storage"
)

// chunkLimit stays under Telegram's 4096-character message cap.
const chunkLimit = 4000

// defaultBroadcastPause spaces broadcast sends so a full-roster notice
// stays under the platform's per-bot send rate.
const defaultBroadcastPause = 50 * time.Millisecond

// Admin is the read-only query surface over member records, gated by a
// static allow-list of administrator identities.
type Admin struct {
	store    storage.Store
	renderer *render.Renderer
	teams    []string
	allowed  map[int64]struct{}

	broadcastPause time.Duration
}

// NewAdmin builds the admin surface.
func NewAdmin(store storage.Store, renderer *render.Renderer, teams []string, adminIDs []int64) (*Admin, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	allowed := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != 0 {
			allowed[id] = struct{}{}
		}
	}
	return &Admin{
		store:          store,
		renderer:       renderer,
		teams:          teams,
		allowed:        allowed,
		broadcastPause: defaultBroadcastPause,
	}, nil
}

// IsAdmin reports whether an identity is on the administrator allow-list.
// Every admin operation consults this check before touching member data.
func (a *Admin) IsAdmin(userID int64) bool {
	if a == nil {
		return false
	}
	_, ok := a.allowed[userID]
	return ok
}

// Deny returns the generic denial reply for non-administrators. It never
// reveals member data or the reason for the rejection.
func (a *Admin) Deny() Reply {
	return Reply{Text: a.renderer.T("admin.denied")}
}

// Summary produces per-team totals plus the roster team picker.
func (a *Admin) Summary(ctx context.Context, event Event) ([]Reply, error) {
	if !a.IsAdmin(event.UserID) {
		return []Reply{a.Deny()}, nil
	}

	counts, err := a.store.CountByTeam(ctx)
	if err != nil {
		return nil, fmt.Errorf("load team counts: %w", err)
	}

	var lines []string
	total := 0
	for _, team := range a.orderedTeams(counts) {
		count := counts[team]
		total += count.Total
		lines = append(lines, a.renderer.T("admin.stats.line", team, count.Total, count.Granted))
	}

	stats := a.renderer.T("admin.stats.empty")
	if total > 0 {
		stats = strings.Join(lines, "\n")
	}

	text := a.renderer.T("admin.stats.header") + "\n" + stats + "\n\n" + a.renderer.T("admin.stats.choose")
	return []Reply{{
		Text:     text,
		Keyboard: Keyboard{Kind: KeyboardAdminTeamPicker, Teams: a.teams},
	}}, nil
}

// Roster returns a team's emails as one copyable block, insertion-ordered.
func (a *Admin) Roster(ctx context.Context, event Event, team string) ([]Reply, error) {
	if !a.IsAdmin(event.UserID) {
		return []Reply{{Text: a.renderer.T("admin.denied_short")}}, nil
	}

	emails, err := a.store.EmailsByTeam(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("load team emails: %w", err)
	}
	if len(emails) == 0 {
		return []Reply{{Text: a.renderer.T("admin.roster.empty", team)}}, nil
	}

	text := a.renderer.T("admin.roster.header", team) + "\n" +
		strings.Join(emails, "\n") + "\n\n" +
		a.renderer.T("admin.roster.hint")
	return []Reply{{Text: text}}, nil
}

// Users dumps every member record, chunked under the platform message cap.
func (a *Admin) Users(ctx context.Context, event Event) ([]Reply, error) {
	if !a.IsAdmin(event.UserID) {
		return []Reply{a.Deny()}, nil
	}

	members, err := a.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	if len(members) == 0 {
		return []Reply{{Text: a.renderer.T("admin.users.empty")}}, nil
	}

	lines := make([]string, 0, len(members))
	for _, member := range members {
		lines = append(lines, a.formatMember(member))
	}

	replies := []Reply{{Text: a.renderer.T("admin.users.header")}}
	for _, chunk := range chunkLines(lines, chunkLimit) {
		replies = append(replies, Reply{Text: chunk})
	}
	return replies, nil
}

// Broadcast sends the start notice to every known member via send and
// reports how many deliveries succeeded.
func (a *Admin) Broadcast(ctx context.Context, event Event, send func(Reply) error) ([]Reply, error) {
	if !a.IsAdmin(event.UserID) {
		return []Reply{a.Deny()}, nil
	}
	if send == nil {
		return nil, fmt.Errorf("send function is required")
	}

	members, err := a.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	if len(members) == 0 {
		return []Reply{{Text: a.renderer.T("admin.broadcast.empty")}}, nil
	}

	notice := a.renderer.T("broadcast.start_notice") + "\n" + a.renderer.T("intake.access_instructions")
	sent := 0
	for i, member := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			// Pace deliveries so the bot stays under the send rate cap.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.broadcastPause):
			}
		}
		if err := send(Reply{ChatID: member.TelegramID, Text: notice}); err != nil {
			log.Printf("admin: broadcast to %d failed: %v", member.TelegramID, err)
			continue
		}
		sent++
	}

	return []Reply{{Text: a.renderer.T("admin.broadcast.done", sent, len(members))}}, nil
}

// orderedTeams lists configured teams first, then any stray teams present
// only in storage, so the summary stays stable and complete.
func (a *Admin) orderedTeams(counts map[string]storage.TeamCount) []string {
	seen := make(map[string]struct{}, len(a.teams))
	ordered := make([]string, 0, len(counts))
	for _, team := range a.teams {
		seen[team] = struct{}{}
		ordered = append(ordered, team)
	}
	// Stray teams come from records written under an older team list.
	var extras []string
	for team := range counts {
		if _, ok := seen[team]; !ok {
			extras = append(extras, team)
		}
	}
	slices.Sort(extras)
	return append(ordered, extras...)
}

func (a *Admin) formatMember(member storage.Member) string {
	name := strings.TrimSpace(strings.Join([]string{member.FirstName, member.LastName}, " "))
	if name == "" {
		name = member.Username
	}
	if name == "" {
		name = a.renderer.T("admin.users.no_name")
	}
	email := member.Email
	if email == "" {
		email = a.renderer.T("admin.users.no_email")
	}
	phone := member.Phone
	if phone == "" {
		phone = a.renderer.T("admin.users.no_phone")
	}
	team := member.Team
	if team == "" {
		team = a.renderer.T("admin.users.no_team")
	}
	granted := a.renderer.T("admin.users.not_granted")
	if member.Granted {
		granted = a.renderer.T("admin.users.granted")
	}
	return fmt.Sprintf("• %s (%d) | %s | %s | %s | %s", name, member.TelegramID, team, email, phone, granted)
}

// chunkLines joins lines into blocks that each stay within max characters.
func chunkLines(lines []string, max int) []string {
	var chunks []string
	var builder strings.Builder
	for _, line := range lines {
		if builder.Len() > 0 && builder.Len()+len(line)+1 > max {
			chunks = append(chunks, strings.TrimRight(builder.String(), "\n"))
			builder.Reset()
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	if builder.Len() > 0 {
		chunks = append(chunks, strings.TrimRight(builder.String(), "\n"))
	}
	return chunks
}
