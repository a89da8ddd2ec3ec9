// Package drive implements the Google Drive connector. It walks a root
// folder recursively, downloads every supported file and exports native
// Google Docs to PDF.
package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/divami-labs/docpipe-cli/internal/connectors/google"
	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Drive MIME types with special handling.
const (
	MimeTypeFolder    = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"

	// ExportMimePDF is the export format for native Google Docs.
	ExportMimePDF = "application/pdf"
)

// listFields are the file attributes requested per page.
const listFields = "nextPageToken, files(id, name, mimeType, modifiedTime, createdTime, webViewLink)"

// allowedMimeTypes are the formats the pipeline downstream can handle.
var allowedMimeTypes = map[string]struct{}{
	MimeTypeGoogleDoc: {},
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
	"text/plain":    {},
	"text/csv":      {},
	"text/markdown": {},
}

// Config holds Google Drive connector configuration.
type Config struct {
	// RootFolderID is the folder the recursive walk starts from (required).
	RootFolderID string

	// PageSize is the page size for list requests (default 100).
	PageSize int64
}

// Connector enumerates files under a Drive folder tree.
type Connector struct {
	svc     *drive.Service
	limiter *google.RateLimiter
	cfg     Config
}

// New creates a Drive connector.
func New(svc *drive.Service, cfg Config) (*Connector, error) {
	if cfg.RootFolderID == "" {
		return nil, fmt.Errorf("drive: root folder ID is required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Connector{
		svc:     svc,
		limiter: google.NewRateLimiter(),
		cfg:     cfg,
	}, nil
}

// System identifies this connector's source system.
func (c *Connector) System() domain.SourceSystem {
	return domain.SourceDrive
}

// Enumerate walks the folder tree and returns every supported file whose
// ID is not in known, with its bytes downloaded. Native Google Docs are
// exported to PDF and their filename gains a ".pdf" suffix.
func (c *Connector) Enumerate(ctx context.Context, known map[string]struct{}) ([]domain.SourceItem, error) {
	files, err := c.walkFolder(ctx, c.cfg.RootFolderID)
	if err != nil {
		return nil, err
	}

	var items []domain.SourceItem
	for _, file := range files {
		if _, seen := known[file.Id]; seen {
			continue
		}

		content, err := c.fetchBytes(ctx, file)
		if err != nil {
			// A single unfetchable file must not abort the run.
			logger.Warn("drive: skipping %s (%s): %v", file.Name, file.Id, err)
			continue
		}

		name := file.Name
		if file.MimeType == MimeTypeGoogleDoc {
			name += ".pdf"
		}

		url := file.WebViewLink
		if url == "" {
			url = fmt.Sprintf("https://drive.google.com/file/d/%s/view", file.Id)
		}

		items = append(items, domain.SourceItem{
			ID:           file.Id,
			Name:         name,
			Content:      content,
			LastModified: file.ModifiedTime,
			DateCreated:  file.CreatedTime,
			SourceSystem: domain.SourceDrive,
			URL:          url,
			MIMEType:     file.MimeType,
		})
	}
	return items, nil
}

// walkFolder returns every allowed, non-folder file under folderID,
// descending into subfolders depth-first.
func (c *Connector) walkFolder(ctx context.Context, folderID string) ([]*drive.File, error) {
	var files []*drive.File

	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
			Spaces("drive").
			PageSize(c.cfg.PageSize).
			Fields(listFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			c.recordRateLimit(err)
			return nil, fmt.Errorf("list folder %s: %w", folderID, err)
		}

		for _, file := range resp.Files {
			if file.MimeType == MimeTypeFolder {
				nested, err := c.walkFolder(ctx, file.Id)
				if err != nil {
					return nil, err
				}
				files = append(files, nested...)
				continue
			}
			if _, ok := allowedMimeTypes[file.MimeType]; ok {
				files = append(files, file)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return files, nil
}

// fetchBytes downloads a file's content, exporting native Google Docs
// to PDF.
func (c *Connector) fetchBytes(ctx context.Context, file *drive.File) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp *http.Response
	var err error
	if file.MimeType == MimeTypeGoogleDoc {
		resp, err = c.svc.Files.Export(file.Id, ExportMimePDF).Context(ctx).Download()
	} else {
		resp, err = c.svc.Files.Get(file.Id).Context(ctx).Download()
	}
	if err != nil {
		c.recordRateLimit(err)
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}

// recordRateLimit tells the limiter to back off after a 429.
func (c *Connector) recordRateLimit(err error) {
	if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 429 {
		c.limiter.RecordRateLimitError(0)
	}
}
