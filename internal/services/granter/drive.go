package granter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2/google"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const tracerName = "drivegate/granter"

// File is one Drive file surfaced on the folder panel.
type File struct {
	ID       string
	Name     string
	ViewLink string
}

// Drive grants viewer access on Google Drive folders through the Drive API.
type Drive struct {
	service *drive.Service
}

// NewDrive builds a Drive granter authenticated by a service-account file.
// A non-empty delegatedUser impersonates that account through domain-wide
// delegation, so shared folders show grants under a human owner.
func NewDrive(ctx context.Context, credentialsPath, delegatedUser string) (*Drive, error) {
	credentialsPath = strings.TrimSpace(credentialsPath)
	if credentialsPath == "" {
		return nil, fmt.Errorf("credentials path is required")
	}

	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveScope),
	}
	if delegatedUser = strings.TrimSpace(delegatedUser); delegatedUser != "" {
		data, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(data, drive.DriveScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account credentials: %w", err)
		}
		jwtConfig.Subject = delegatedUser
		opts = []option.ClientOption{option.WithTokenSource(jwtConfig.TokenSource(ctx))}
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Drive{service: service}, nil
}

// Grant adds email as a viewer on folderID. A permission that already
// exists counts as success. Single attempt; failures come back classified.
func (d *Drive) Grant(ctx context.Context, email, folderID string) error {
	if d == nil || d.service == nil {
		return &GrantError{Reason: ReasonUnknown, Err: fmt.Errorf("drive granter is not configured")}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return &GrantError{Reason: ReasonInvalidEmail, Err: fmt.Errorf("email is required")}
	}
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return &GrantError{Reason: ReasonMissingFolder, Err: fmt.Errorf("folder id is required")}
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "drive.grant")
	span.SetAttributes(attribute.String("drive.folder_id", folderID))
	defer span.End()

	permission := &drive.Permission{
		Type:         "user",
		Role:         "reader",
		EmailAddress: email,
	}
	_, err := d.service.Permissions.Create(folderID, permission).
		SendNotificationEmail(false).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		if alreadyGranted(err) {
			return nil
		}
		classified := classifyDriveError(err)
		span.RecordError(classified)
		span.SetStatus(otelcodes.Error, string(ClassifyReason(classified)))
		return classified
	}
	return nil
}

// ListFiles returns up to limit recently modified files inside folderID.
func (d *Drive) ListFiles(ctx context.Context, folderID string, limit int) ([]File, error) {
	if d == nil || d.service == nil {
		return nil, fmt.Errorf("drive granter is not configured")
	}
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, fmt.Errorf("folder id is required")
	}
	if limit <= 0 {
		limit = 5
	}

	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)
	result, err := d.service.Files.List().
		Q(query).
		PageSize(int64(limit)).
		OrderBy("modifiedTime desc").
		Fields("files(id,name,webViewLink)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list folder files: %w", err)
	}

	files := make([]File, 0, len(result.Files))
	for _, item := range result.Files {
		files = append(files, File{
			ID:       item.Id,
			Name:     item.Name,
			ViewLink: item.WebViewLink,
		})
	}
	return files, nil
}

// FolderURL returns the browser URL for a Drive folder.
func FolderURL(folderID string) string {
	return "https://drive.google.com/drive/folders/" + strings.TrimSpace(folderID)
}

func alreadyGranted(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 409
	}
	return false
}

func classifyDriveError(err error) *GrantError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400, 404:
			return &GrantError{Reason: ReasonInvalidEmail, Err: err}
		case 403:
			return &GrantError{Reason: ReasonPermissionDenied, Err: err}
		}
		return &GrantError{Reason: ReasonUnknown, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &GrantError{Reason: ReasonNetwork, Err: err}
	}
	return &GrantError{Reason: ReasonUnknown, Err: err}
}

var _ Granter = (*Drive)(nil)
