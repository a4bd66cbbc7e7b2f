package granter

import (
	"errors"
	"fmt"
	"testing"
)

func TestFoldersResolveUsesTeamMapping(t *testing.T) {
	folders := NewFolders(map[string]string{"Team A": "F1"}, "F-default")

	folderID, err := folders.Resolve("Team A")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if folderID != "F1" {
		t.Fatalf("folder = %q, want %q", folderID, "F1")
	}
}

func TestFoldersResolveFallsBackToDefault(t *testing.T) {
	folders := NewFolders(map[string]string{"Team A": "F1"}, "F-default")

	folderID, err := folders.Resolve("Team B")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if folderID != "F-default" {
		t.Fatalf("folder = %q, want default %q", folderID, "F-default")
	}
}

func TestFoldersResolveMissingMappingAndDefault(t *testing.T) {
	folders := NewFolders(nil, "")

	_, err := folders.Resolve("Team C")
	if err == nil {
		t.Fatal("expected error")
	}
	if ClassifyReason(err) != ReasonMissingFolder {
		t.Fatalf("reason = %q, want %q", ClassifyReason(err), ReasonMissingFolder)
	}
}

func TestFoldersResolveTrimsWhitespace(t *testing.T) {
	folders := NewFolders(map[string]string{" Team A ": " F1 "}, "")

	folderID, err := folders.Resolve("Team A")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if folderID != "F1" {
		t.Fatalf("folder = %q, want trimmed %q", folderID, "F1")
	}
}

func TestGrantErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &GrantError{Reason: ReasonNetwork, Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("expected grant error to unwrap to its cause")
	}
	if err.Error() != "network: boom" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestClassifyReason(t *testing.T) {
	if reason := ClassifyReason(nil); reason != "" {
		t.Fatalf("nil error reason = %q, want empty", reason)
	}
	if reason := ClassifyReason(fmt.Errorf("plain")); reason != ReasonUnknown {
		t.Fatalf("plain error reason = %q, want %q", reason, ReasonUnknown)
	}
	err := &GrantError{Reason: ReasonPermissionDenied}
	if reason := ClassifyReason(err); reason != ReasonPermissionDenied {
		t.Fatalf("reason = %q, want %q", reason, ReasonPermissionDenied)
	}
}
