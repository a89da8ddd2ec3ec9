package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Config holds Notion connector configuration.
type Config struct {
	// RootPageID is the page the recursive walk starts from (required).
	RootPageID string
}

// Connector walks a Notion page tree. Every page contributes its file
// and image attachments as individual items; a page with text but no
// attachments contributes one bundled "<Title>.txt" item instead.
type Connector struct {
	client *Client
	cfg    Config
}

// New creates a Notion connector.
func New(client *Client, cfg Config) (*Connector, error) {
	if cfg.RootPageID == "" {
		return nil, fmt.Errorf("notion: root page ID is required")
	}
	return &Connector{client: client, cfg: cfg}, nil
}

// System identifies this connector's source system.
func (c *Connector) System() domain.SourceSystem {
	return domain.SourceNotes
}

// Enumerate walks the tree under the root page and returns every item
// whose ID is not in known. Item IDs are "<pageID>:<filename>" so one
// page can contribute several attachments.
func (c *Connector) Enumerate(ctx context.Context, known map[string]struct{}) ([]domain.SourceItem, error) {
	return c.walkPage(ctx, c.cfg.RootPageID, known)
}

// walkPage processes pageID as a leaf, then recurses into child pages
// and inline databases.
func (c *Connector) walkPage(ctx context.Context, pageID string, known map[string]struct{}) ([]domain.SourceItem, error) {
	items, err := c.processLeafPage(ctx, pageID, known)
	if err != nil {
		return nil, err
	}

	blocks, err := c.client.FetchAllBlockChildren(ctx, pageID)
	if err != nil {
		return nil, err
	}

	for _, block := range blocks {
		switch block.Type {
		case "child_page":
			nested, err := c.walkPage(ctx, block.ID, known)
			if err != nil {
				return nil, err
			}
			items = append(items, nested...)

		case "child_database":
			rows, err := c.client.FetchAllDatabaseRows(ctx, block.ID)
			if err != nil {
				return nil, err
			}
			for _, row := range rows {
				leaf, err := c.processLeafPage(ctx, row.ID, known)
				if err != nil {
					return nil, err
				}
				items = append(items, leaf...)
			}
		}
	}
	return items, nil
}

// processLeafPage collects one page's attachments and text. Attachments
// whose ID is already known are skipped before downloading.
func (c *Connector) processLeafPage(ctx context.Context, pageID string, known map[string]struct{}) ([]domain.SourceItem, error) {
	page, err := c.client.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	blocks, err := c.client.FetchAllBlockChildren(ctx, pageID)
	if err != nil {
		return nil, err
	}

	var items []domain.SourceItem
	var textChunks []string
	attachmentCount := 0

	for _, block := range blocks {
		if text := block.PlainText(); text != "" {
			textChunks = append(textChunks, text)
			continue
		}

		var file *FileContent
		switch block.Type {
		case "image":
			file = block.Image
		case "file":
			file = block.File
		default:
			continue
		}
		if file == nil || file.File.URL == "" {
			continue
		}
		attachmentCount++

		filename := file.Name
		if filename == "" {
			filename = filenameFromURL(file.File.URL)
		}
		if filename == "" {
			filename = "file_" + block.ID
		}

		itemID := pageID + ":" + filename
		if _, seen := known[itemID]; seen {
			continue
		}

		content, err := c.client.DownloadFile(ctx, file.File.URL)
		if err != nil {
			// A single unfetchable attachment must not abort the run.
			logger.Warn("notion: skipping %s: %v", itemID, err)
			continue
		}

		items = append(items, domain.SourceItem{
			ID:           itemID,
			Name:         filename,
			Content:      content,
			LastModified: page.LastEditedTime,
			DateCreated:  page.CreatedTime,
			SourceSystem: domain.SourceNotes,
			URL:          file.File.URL,
		})
	}

	// Pages without attachments contribute their text as one .txt item.
	if attachmentCount == 0 && len(textChunks) > 0 {
		title := page.Title()
		if title == "" {
			title = "page_" + pageID
		}
		filename := strings.ReplaceAll(title, " ", "_") + ".txt"

		itemID := pageID + ":" + filename
		if _, seen := known[itemID]; !seen {
			pageURL := page.URL
			if pageURL == "" {
				pageURL = "https://www.notion.so/" + pageID
			}

			items = append(items, domain.SourceItem{
				ID:           itemID,
				Name:         filename,
				Content:      []byte(strings.Join(textChunks, "\n\n")),
				LastModified: page.LastEditedTime,
				DateCreated:  page.CreatedTime,
				SourceSystem: domain.SourceNotes,
				URL:          pageURL,
				MIMEType:     "text/plain",
			})
		}
	}

	return items, nil
}

// filenameFromURL extracts the last path segment before any query string.
func filenameFromURL(fileURL string) string {
	trimmed := fileURL
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return trimmed
}
