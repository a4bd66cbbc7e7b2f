package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/drivegate/drivegate/internal/services/granter"
	"github.com/drivegate/drivegate/internal/services/intake/render"
	"github.com/drivegate/drivegate/internal/services/intake/storage"
)

// emailPattern is the syntactic email check applied before persisting.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const fileLabelMax = 40

// Callback data prefixes shared with the transport layer.
const (
	CallbackTeamPrefix      = "team|"
	CallbackAdminTeamPrefix = "admin_team|"
	CallbackFilesPrefix     = "files|"
)

// AccessGranter is the folder-sharing contract the conversation invokes on
// the final step.
type AccessGranter interface {
	Grant(ctx context.Context, email, folderID string) error
	ListFiles(ctx context.Context, folderID string, limit int) ([]granter.File, error)
}

// FlowConfig wires the conversation dependencies.
type FlowConfig struct {
	Store          storage.Store
	Granter        AccessGranter
	Folders        *granter.Folders
	Renderer       *render.Renderer
	Teams          []string
	FilePanelLimit int
}

// Flow is the intake conversation state machine.
type Flow struct {
	store          storage.Store
	granter        AccessGranter
	folders        *granter.Folders
	renderer       *render.Renderer
	sessions       *Sessions
	teams          []string
	filePanelLimit int
}

// NewFlow builds the conversation state machine.
func NewFlow(cfg FlowConfig) (*Flow, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Granter == nil {
		return nil, fmt.Errorf("granter is required")
	}
	if cfg.Folders == nil {
		return nil, fmt.Errorf("folder resolver is required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if len(cfg.Teams) == 0 {
		return nil, fmt.Errorf("at least one team is required")
	}
	limit := cfg.FilePanelLimit
	if limit <= 0 {
		limit = 5
	}
	return &Flow{
		store:          cfg.Store,
		granter:        cfg.Granter,
		folders:        cfg.Folders,
		renderer:       cfg.Renderer,
		sessions:       NewSessions(),
		teams:          cfg.Teams,
		filePanelLimit: limit,
	}, nil
}

// Handle advances the sender's session with one inbound event and returns
// the replies to send. Validation problems never surface as errors; they
// come back as re-prompt replies with the session unchanged.
func (f *Flow) Handle(ctx context.Context, event Event) ([]Reply, error) {
	if f == nil {
		return nil, fmt.Errorf("flow is not configured")
	}
	if event.UserID == 0 {
		return nil, fmt.Errorf("event user id is required")
	}

	// The file panel is reachable at any point of the conversation.
	if event.Kind == EventCallback && strings.HasPrefix(event.Callback, CallbackFilesPrefix) {
		return f.filePanel(ctx, strings.TrimPrefix(event.Callback, CallbackFilesPrefix)), nil
	}

	session := f.sessions.get(event.UserID)
	session.mu.Lock()
	defer session.mu.Unlock()

	if event.Command == "start" {
		return f.start(ctx, event, session), nil
	}

	switch session.Step {
	case StepNone, StepDone:
		return f.start(ctx, event, session), nil
	case StepAwaitingPhone:
		return f.collectPhone(event, session), nil
	case StepAwaitingTeam:
		return f.collectTeam(event, session), nil
	case StepAwaitingEmail:
		return f.collectEmail(ctx, event, session), nil
	default:
		return nil, fmt.Errorf("unknown session step %q", session.Step)
	}
}

// start resets the session. Users with a completed record on file skip the
// phone step and land directly on team selection.
func (f *Flow) start(ctx context.Context, event Event, session *Session) []Reply {
	member, err := f.store.GetMember(ctx, event.UserID)
	if err == nil && member.Phone != "" {
		session.reset(StepAwaitingTeam)
		session.Phone = member.Phone
		return []Reply{{
			Text:     f.renderer.T("intake.welcome_back") + "\n\n" + f.renderer.T("intake.access_instructions"),
			Keyboard: Keyboard{Kind: KeyboardTeamPicker, Teams: f.teams},
		}}
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("intake: load member %d: %v", event.UserID, err)
	}

	session.reset(StepAwaitingPhone)
	return []Reply{{
		Text:     f.renderer.T("intake.greeting"),
		Keyboard: Keyboard{Kind: KeyboardContactRequest},
	}}
}

func (f *Flow) collectPhone(event Event, session *Session) []Reply {
	if event.Kind != EventContactShare {
		return []Reply{{
			Text:     f.renderer.T("intake.phone_required"),
			Keyboard: Keyboard{Kind: KeyboardContactRequest},
		}}
	}
	if event.Contact.UserID != event.UserID {
		return []Reply{{
			Text:     f.renderer.T("intake.contact_mismatch"),
			Keyboard: Keyboard{Kind: KeyboardContactRequest},
		}}
	}
	phone := strings.TrimSpace(event.Contact.PhoneNumber)
	if phone == "" {
		return []Reply{{
			Text:     f.renderer.T("intake.phone_required"),
			Keyboard: Keyboard{Kind: KeyboardContactRequest},
		}}
	}

	session.Phone = phone
	session.Step = StepAwaitingTeam
	return []Reply{{
		Text:     f.renderer.T("intake.team_prompt"),
		Keyboard: Keyboard{Kind: KeyboardTeamPicker, Teams: f.teams},
	}}
}

func (f *Flow) collectTeam(event Event, session *Session) []Reply {
	team := ""
	if event.Kind == EventCallback && strings.HasPrefix(event.Callback, CallbackTeamPrefix) {
		team = strings.TrimPrefix(event.Callback, CallbackTeamPrefix)
	}
	if team == "" || !f.knownTeam(team) {
		return []Reply{{
			Text:     f.renderer.T("intake.team_unknown"),
			Keyboard: Keyboard{Kind: KeyboardTeamPicker, Teams: f.teams},
		}}
	}

	session.Team = team
	session.Step = StepAwaitingEmail
	return []Reply{{
		Text:     f.renderer.T("intake.email_prompt"),
		Keyboard: Keyboard{Kind: KeyboardRemove},
	}}
}

// collectEmail validates the email, persists the member record, and then
// attempts the folder grant. The record write always precedes the grant
// call so an interrupted completion leaves a recoverable granted=false row.
func (f *Flow) collectEmail(ctx context.Context, event Event, session *Session) []Reply {
	email := ""
	if event.Kind == EventText {
		email = strings.TrimSpace(event.Text)
	}
	if email == "" || !emailPattern.MatchString(email) {
		return []Reply{{Text: f.renderer.T("intake.email_invalid")}}
	}

	member := storage.Member{
		TelegramID: event.UserID,
		FirstName:  event.FirstName,
		LastName:   event.LastName,
		Username:   event.Username,
		Phone:      session.Phone,
		Team:       session.Team,
		Email:      email,
	}

	folderID, folderErr := f.folders.Resolve(session.Team)
	if folderErr != nil {
		member.GrantError = string(granter.ReasonMissingFolder)
		if err := f.store.UpsertMember(ctx, member); err != nil {
			log.Printf("intake: persist member %d: %v", event.UserID, err)
			return []Reply{{Text: f.renderer.T("intake.storage_error")}}
		}
		log.Printf("intake: no folder for team %q, grant skipped for %d", session.Team, event.UserID)
		session.Step = StepDone
		return []Reply{{Text: f.renderer.T("intake.grant.missing_folder"), Keyboard: Keyboard{Kind: KeyboardRemove}}}
	}

	if err := f.store.UpsertMember(ctx, member); err != nil {
		log.Printf("intake: persist member %d: %v", event.UserID, err)
		return []Reply{{Text: f.renderer.T("intake.storage_error")}}
	}

	replies := []Reply{{Text: f.renderer.T("intake.grant.working"), Keyboard: Keyboard{Kind: KeyboardRemove}}}

	if err := f.granter.Grant(ctx, email, folderID); err != nil {
		reason := granter.ClassifyReason(err)
		log.Printf("intake: grant %s on %s for %d failed: %v", email, folderID, event.UserID, err)

		member.GrantError = string(reason)
		if uerr := f.store.UpsertMember(ctx, member); uerr != nil {
			log.Printf("intake: record grant failure for %d: %v", event.UserID, uerr)
		}
		session.Step = StepDone
		return append(replies, Reply{Text: f.grantFailureText(reason)})
	}

	member.Granted = true
	member.GrantError = ""
	if err := f.store.UpsertMember(ctx, member); err != nil {
		log.Printf("intake: record grant success for %d: %v", event.UserID, err)
	}

	session.Step = StepDone
	return append(replies,
		Reply{Text: f.renderer.T("intake.grant.success", session.Team)},
		Reply{Text: f.renderer.T("intake.access_instructions")},
		Reply{
			Text: f.renderer.T("intake.file_panel.prompt"),
			Keyboard: Keyboard{
				Kind:      KeyboardFolderActions,
				Team:      session.Team,
				FolderURL: granter.FolderURL(folderID),
			},
		},
	)
}

// filePanel answers the folder-files callback with inline file links.
func (f *Flow) filePanel(ctx context.Context, team string) []Reply {
	folderID, err := f.folders.Resolve(team)
	if err != nil {
		return []Reply{{Text: f.renderer.T("intake.file_panel.error")}}
	}

	files, err := f.granter.ListFiles(ctx, folderID, f.filePanelLimit)
	if err != nil {
		log.Printf("intake: list files for team %q: %v", team, err)
		return []Reply{{Text: f.renderer.T("intake.file_panel.error")}}
	}
	if len(files) == 0 {
		return []Reply{{
			Text: f.renderer.T("intake.file_panel.empty"),
			Keyboard: Keyboard{
				Kind:      KeyboardFolderActions,
				Team:      team,
				FolderURL: granter.FolderURL(folderID),
			},
		}}
	}

	trimmed := make([]granter.File, 0, len(files))
	for _, file := range files {
		file.Name = trimFileLabel(file.Name)
		trimmed = append(trimmed, file)
	}
	return []Reply{{
		Text:     f.renderer.T("intake.file_panel.header"),
		Keyboard: Keyboard{Kind: KeyboardFileLinks, Files: trimmed},
	}}
}

func (f *Flow) grantFailureText(reason granter.Reason) string {
	switch reason {
	case granter.ReasonInvalidEmail:
		return f.renderer.T("intake.grant.invalid_email")
	case granter.ReasonPermissionDenied:
		return f.renderer.T("intake.grant.permission_denied")
	case granter.ReasonNetwork:
		return f.renderer.T("intake.grant.network")
	case granter.ReasonMissingFolder:
		return f.renderer.T("intake.grant.missing_folder")
	default:
		return f.renderer.T("intake.grant.unknown")
	}
}

func (f *Flow) knownTeam(team string) bool {
	for _, candidate := range f.teams {
		if candidate == team {
			return true
		}
	}
	return false
}

func trimFileLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= fileLabelMax {
		return name
	}
	return string(runes[:fileLabelMax-3]) + "..."
}
