package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages/page-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("Notion-Version"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":               "page-1",
			"url":              "https://www.notion.so/page-1",
			"created_time":     "2024-01-01T00:00:00.000Z",
			"last_edited_time": "2024-02-01T00:00:00.000Z",
			"properties": map[string]any{
				"Name": map[string]any{
					"title": []map[string]any{{"plain_text": "Project Notes"}},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient("tok", WithBaseURL(server.URL))

	page, err := client.GetPage(context.Background(), "page-1")
	require.NoError(t, err)
	assert.Equal(t, "page-1", page.ID)
	assert.Equal(t, "Project Notes", page.Title())
	assert.Equal(t, "2024-02-01T00:00:00.000Z", page.LastEditedTime)
}

func TestPage_TitleAbsent(t *testing.T) {
	page := &Page{ID: "p"}
	assert.Equal(t, "", page.Title())
}

func TestFetchAllBlockChildren_Paginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/blocks/blk/children", r.URL.Path)

		if r.URL.Query().Get("start_cursor") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{
					{"id": "b1", "type": "paragraph",
						"paragraph": map[string]any{"rich_text": []map[string]any{{"plain_text": "first"}}}},
				},
				"has_more":    true,
				"next_cursor": "cur-2",
			})
			return
		}

		require.Equal(t, "cur-2", r.URL.Query().Get("start_cursor"))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "b2", "type": "paragraph",
					"paragraph": map[string]any{"rich_text": []map[string]any{{"plain_text": "second"}}}},
			},
			"has_more": false,
		})
	}))
	defer server.Close()

	client := NewClient("tok", WithBaseURL(server.URL))

	blocks, err := client.FetchAllBlockChildren(context.Background(), "blk")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "first", blocks[0].PlainText())
	assert.Equal(t, "second", blocks[1].PlainText())
}

func TestDownloadFile_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("attachment-bytes"))
	}))
	defer server.Close()

	client := NewClient("tok", WithBackoff(0))

	data, err := client.DownloadFile(context.Background(), server.URL+"/f.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("attachment-bytes"), data)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDownloadFile_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("tok", WithBackoff(0))

	_, err := client.DownloadFile(context.Background(), server.URL+"/f.pdf")
	assert.ErrorContains(t, err, "status 429")
	assert.Equal(t, int32(maxRetries), calls.Load())
}

func TestDownloadFile_NoRetryOnPermanentFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("tok", WithBackoff(0))

	_, err := client.DownloadFile(context.Background(), server.URL+"/gone.pdf")
	assert.ErrorContains(t, err, "status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestBlock_PlainTextPerType(t *testing.T) {
	text := &TextContent{RichText: []RichText{{PlainText: "a"}, {PlainText: "b"}}}

	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"paragraph", Block{Type: "paragraph", Paragraph: text}, "ab"},
		{"heading", Block{Type: "heading_2", Heading2: text}, "ab"},
		{"bulleted", Block{Type: "bulleted_list_item", BulletedListItem: text}, "ab"},
		{"image has no text", Block{Type: "image", Image: &FileContent{}}, ""},
		{"mismatched body", Block{Type: "paragraph", Heading1: text}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.block.PlainText())
		})
	}
}
