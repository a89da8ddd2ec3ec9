// Package notion implements the Notion connector: a minimal REST client
// for the pieces of the Notion API the pipeline needs, and a connector
// that walks a page tree collecting text and attachments.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// API constants.
const (
	DefaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

// Retry policy for transient upstream failures.
const (
	maxRetries   = 3
	retryBackoff = time.Second
)

// retryableStatus reports whether a response status warrants a retry.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// RichText is one span of formatted text.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// TextContent is the body of a text-bearing block.
type TextContent struct {
	RichText []RichText `json:"rich_text"`
}

// HostedFile is a Notion-hosted file reference with an expiring URL.
type HostedFile struct {
	URL string `json:"url"`
}

// FileContent is the body of an image or file block.
type FileContent struct {
	File HostedFile `json:"file"`
	Name string     `json:"name"`
}

// Block is a single content block. Exactly one of the typed bodies is
// populated, matching Type.
type Block struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Paragraph        *TextContent `json:"paragraph,omitempty"`
	Heading1         *TextContent `json:"heading_1,omitempty"`
	Heading2         *TextContent `json:"heading_2,omitempty"`
	Heading3         *TextContent `json:"heading_3,omitempty"`
	BulletedListItem *TextContent `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextContent `json:"numbered_list_item,omitempty"`

	Image *FileContent `json:"image,omitempty"`
	File  *FileContent `json:"file,omitempty"`
}

// PlainText concatenates the block's rich text spans. Empty for blocks
// that carry no text.
func (b *Block) PlainText() string {
	var content *TextContent
	switch b.Type {
	case "paragraph":
		content = b.Paragraph
	case "heading_1":
		content = b.Heading1
	case "heading_2":
		content = b.Heading2
	case "heading_3":
		content = b.Heading3
	case "bulleted_list_item":
		content = b.BulletedListItem
	case "numbered_list_item":
		content = b.NumberedListItem
	}
	if content == nil {
		return ""
	}

	var buf bytes.Buffer
	for _, rt := range content.RichText {
		buf.WriteString(rt.PlainText)
	}
	return buf.String()
}

// titleProperty is the "title" payload of a page property.
type titleProperty struct {
	Title []RichText `json:"title"`
}

// Page is a Notion page's metadata.
type Page struct {
	ID             string                   `json:"id"`
	URL            string                   `json:"url"`
	CreatedTime    string                   `json:"created_time"`
	LastEditedTime string                   `json:"last_edited_time"`
	Properties     map[string]titleProperty `json:"properties"`
}

// Title extracts the page's "Name" title property, or "" when absent.
func (p *Page) Title() string {
	name, ok := p.Properties["Name"]
	if !ok || len(name.Title) == 0 {
		return ""
	}
	return name.Title[0].PlainText
}

// BlockChildrenPage is one page of a block-children listing.
type BlockChildrenPage struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// DatabaseQueryPage is one page of a database query; each result is a page.
type DatabaseQueryPage struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Client is a minimal Notion API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	backoff    time.Duration
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithBackoff overrides the base retry backoff, for tests.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

// NewClient creates a Notion API client.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
		backoff:    retryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPage fetches a page's metadata.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return nil, fmt.Errorf("get page %s: %w", pageID, err)
	}
	return &page, nil
}

// ListBlockChildren fetches one page of a block's children. cursor is
// empty for the first page.
func (c *Client) ListBlockChildren(ctx context.Context, blockID, cursor string) (*BlockChildrenPage, error) {
	path := "/blocks/" + blockID + "/children"
	if cursor != "" {
		path += "?start_cursor=" + url.QueryEscape(cursor)
	}

	var page BlockChildrenPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("list children of %s: %w", blockID, err)
	}
	return &page, nil
}

// FetchAllBlockChildren drains the pagination of ListBlockChildren.
func (c *Client) FetchAllBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	cursor := ""
	for {
		page, err := c.ListBlockChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, page.Results...)
		if !page.HasMore {
			return blocks, nil
		}
		cursor = page.NextCursor
	}
}

// QueryDatabase fetches one page of a database's rows.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, cursor string) (*DatabaseQueryPage, error) {
	body := map[string]string{}
	if cursor != "" {
		body["start_cursor"] = cursor
	}

	var page DatabaseQueryPage
	if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body, &page); err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	return &page, nil
}

// FetchAllDatabaseRows drains the pagination of QueryDatabase.
func (c *Client) FetchAllDatabaseRows(ctx context.Context, databaseID string) ([]Page, error) {
	var rows []Page
	cursor := ""
	for {
		page, err := c.QueryDatabase(ctx, databaseID, cursor)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Results...)
		if !page.HasMore {
			return rows, nil
		}
		cursor = page.NextCursor
	}
}

// DownloadFile fetches raw bytes from a Notion-hosted file URL, retrying
// transient failures with linear backoff. Hosted URLs are pre-signed, so
// no Authorization header is sent.
func (c *Client) DownloadFile(ctx context.Context, fileURL string) ([]byte, error) {
	var lastStatus int
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download file: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read file: %w", err)
			}
			return data, nil
		}

		resp.Body.Close()
		lastStatus = resp.StatusCode

		if !retryableStatus(resp.StatusCode) || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
	return nil, fmt.Errorf("download file: status %d after %d attempts", lastStatus, maxRetries)
}

// do executes one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notion error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
