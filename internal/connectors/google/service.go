// Package google provides shared infrastructure for Google API access:
// service-account authentication and API rate limiting.
package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveScopes are the OAuth scopes the pipeline needs. Read-only is
// enough: the pipeline never writes back to Drive.
var DriveScopes = []string{drive.DriveReadonlyScope}

// NewDriveService creates a Drive API service authenticated with the
// service-account key file at credentialsFile.
func NewDriveService(ctx context.Context, credentialsFile string) (*drive.Service, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(data, DriveScopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}
