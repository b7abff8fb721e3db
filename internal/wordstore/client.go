package wordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// wordBatchSize bounds ids per call; the remote caps filter lists.
	wordBatchSize = 50

	// tagBatchSize is smaller: tag filters carry quoted word text and
	// long URLs get rejected before the filter limit is hit.
	tagBatchSize = 25

	defaultTimeout = 15 * time.Second
)

// Client is an HTTP Resolver against a PostgREST-style word store.
type Client struct {
	baseURL    string
	apiKey     string
	wordsTable string
	tagsTable  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTables overrides the word and tag table names.
func WithTables(words, tags string) Option {
	return func(c *Client) {
		c.wordsTable = words
		c.tagsTable = tags
	}
}

// NewClient creates a word store client for the given endpoint.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		wordsTable: "bccwj",
		tagsTable:  "jlpt",
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Resolver = (*Client)(nil)

// Resolve fetches word text for the given ranks in chunks, then enriches
// the results with proficiency tags. A word fetch failure is a
// *LookupError; a tag fetch failure is logged and ignored, the words
// simply carry no tag.
func (c *Client) Resolve(ctx context.Context, ids []int) (map[int]Word, error) {
	result := make(map[int]Word, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	for _, chunk := range chunkInts(ids, wordBatchSize) {
		if err := c.fetchWords(ctx, chunk, result); err != nil {
			return nil, err
		}
	}

	texts := make([]string, 0, len(result))
	for _, w := range result {
		texts = append(texts, w.Text)
	}
	c.enrichTags(ctx, texts, result)

	return result, nil
}

func (c *Client) fetchWords(ctx context.Context, ids []int, into map[int]Word) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	q := url.Values{}
	q.Set("select", "id,word")
	q.Set("id", "in.("+strings.Join(parts, ",")+")")

	var rows []Word
	if err := c.get(ctx, c.wordsTable, q, &rows); err != nil {
		return err
	}

	for _, w := range rows {
		into[w.ID] = w
	}
	return nil
}

// enrichTags attaches proficiency tags by word text. Best-effort: any
// failure leaves the affected words untagged.
func (c *Client) enrichTags(ctx context.Context, texts []string, words map[int]Word) {
	if len(texts) == 0 {
		return
	}

	tagByText := make(map[string]string)
	for _, chunk := range chunkStrings(texts, tagBatchSize) {
		quoted := make([]string, len(chunk))
		for i, t := range chunk {
			quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
		}

		q := url.Values{}
		q.Set("select", "word,tags")
		q.Set("word", "in.("+strings.Join(quoted, ",")+")")

		var rows []struct {
			Word string `json:"word"`
			Tags string `json:"tags"`
		}
		if err := c.get(ctx, c.tagsTable, q, &rows); err != nil {
			fmt.Fprintf(os.Stderr, "warning: tag lookup failed, continuing untagged: %v\n", err)
			continue
		}
		for _, r := range rows {
			tagByText[r.Word] = r.Tags
		}
	}

	for id, w := range words {
		if tag, ok := tagByText[w.Text]; ok {
			w.Tag = tag
			words[id] = w
		}
	}
}

func (c *Client) get(ctx context.Context, table string, q url.Values, out any) error {
	u := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &LookupError{Err: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &LookupError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &LookupError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &LookupError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func chunkInts(vals []int, size int) [][]int {
	var chunks [][]int
	for len(vals) > size {
		chunks = append(chunks, vals[:size])
		vals = vals[size:]
	}
	if len(vals) > 0 {
		chunks = append(chunks, vals)
	}
	return chunks
}

func chunkStrings(vals []string, size int) [][]string {
	var chunks [][]string
	for len(vals) > size {
		chunks = append(chunks, vals[:size])
		vals = vals[size:]
	}
	if len(vals) > 0 {
		chunks = append(chunks, vals)
	}
	return chunks
}
