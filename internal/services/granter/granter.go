// Package granter shares team Drive folders with member emails.
package granter

import (
	"context"
	"fmt"
	"strings"
)

// Reason classifies why a grant attempt failed.
type Reason string

const (
	// ReasonInvalidEmail marks emails Drive rejected as unknown or malformed.
	ReasonInvalidEmail Reason = "invalid_email"
	// ReasonPermissionDenied marks folders the service account cannot share.
	ReasonPermissionDenied Reason = "permission_denied"
	// ReasonNetwork marks transient transport failures.
	ReasonNetwork Reason = "network"
	// ReasonMissingFolder marks teams with no folder mapping and no default.
	ReasonMissingFolder Reason = "missing_folder"
	// ReasonUnknown marks everything else.
	ReasonUnknown Reason = "unknown"
)

// GrantError is a classified grant failure. It unwraps to the cause.
type GrantError struct {
	Reason Reason
	Err    error
}

func (e *GrantError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *GrantError) Unwrap() error {
	return e.Err
}

// ClassifyReason returns the reason for a grant error, or ReasonUnknown
// when the error was not produced by this package.
func ClassifyReason(err error) Reason {
	if err == nil {
		return ""
	}
	if grantErr, ok := err.(*GrantError); ok {
		return grantErr.Reason
	}
	return ReasonUnknown
}

// Granter adds an email as viewer on a folder. A grant that already exists
// must succeed; the contract is idempotent in intent. Single attempt only,
// classification of the failure is the caller's recovery surface.
type Granter interface {
	Grant(ctx context.Context, email, folderID string) error
}

// Folders resolves a team name to its Drive folder id.
type Folders struct {
	byTeam    map[string]string
	defaultID string
}

// NewFolders builds a resolver from the configured team map and default.
func NewFolders(byTeam map[string]string, defaultID string) *Folders {
	cleaned := make(map[string]string, len(byTeam))
	for team, folderID := range byTeam {
		team = strings.TrimSpace(team)
		folderID = strings.TrimSpace(folderID)
		if team == "" || folderID == "" {
			continue
		}
		cleaned[team] = folderID
	}
	return &Folders{byTeam: cleaned, defaultID: strings.TrimSpace(defaultID)}
}

// Resolve returns the folder id for a team, falling back to the default.
// A team with no mapping and no default yields a ReasonMissingFolder error.
func (f *Folders) Resolve(team string) (string, error) {
	if f == nil {
		return "", &GrantError{Reason: ReasonMissingFolder, Err: fmt.Errorf("folder resolver is not configured")}
	}
	if folderID, ok := f.byTeam[strings.TrimSpace(team)]; ok {
		return folderID, nil
	}
	if f.defaultID != "" {
		return f.defaultID, nil
	}
	return "", &GrantError{Reason: ReasonMissingFolder, Err: fmt.Errorf("no folder configured for team %q", team)}
}
