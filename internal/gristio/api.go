package gristio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/orgviz/orgviz/internal/contract"
)

// DefaultBaseURL points at the public Grist instance the reference
// documents live on.
const DefaultBaseURL = "https://grist.numerique.gouv.fr"

// APIConfig holds the credentials and location of a Grist document.
type APIConfig struct {
	BaseURL string
	DocID   string
	APIKey  string
}

// APIConfigFromEnv reads the Grist API configuration from the
// environment. The second return value lists the missing variables so the
// CLI can guide the user.
func APIConfigFromEnv() (*APIConfig, []string) {
	var missing []string
	apiKey := cleanEnv("ORGVIZ_GRIST_API_KEY")
	docID := cleanEnv("ORGVIZ_GRIST_DOC_ID")
	baseURL := cleanEnv("ORGVIZ_GRIST_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		missing = append(missing, "ORGVIZ_GRIST_API_KEY")
	}
	if docID == "" {
		missing = append(missing, "ORGVIZ_GRIST_DOC_ID")
	}
	if len(missing) > 0 {
		return nil, missing
	}
	return &APIConfig{BaseURL: strings.TrimRight(baseURL, "/"), DocID: docID, APIKey: apiKey}, nil
}

func cleanEnv(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// Client fetches snapshots over the Grist records API.
type Client struct {
	cfg  APIConfig
	http *http.Client
}

// NewClient builds a Client with a bounded request timeout.
func NewClient(cfg APIConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// recordsPayload mirrors GET /api/docs/{doc}/tables/{table}/records.
type recordsPayload struct {
	Records []struct {
		ID     json.Number    `json:"id"`
		Fields map[string]any `json:"fields"`
	} `json:"records"`
}

// FetchSnapshot pulls the five mapped tables from the document.
func (c *Client) FetchSnapshot(ctx context.Context, m *contract.Mapping) (*Snapshot, error) {
	snap := &Snapshot{Source: "grist API"}
	loads := []struct {
		table string
		dst   *Table
	}{
		{m.Tables.Teams, &snap.Teams},
		{m.Tables.People, &snap.People},
		{m.Tables.Epics, &snap.Epics},
		{m.Tables.Features, &snap.Features},
		{m.Tables.Assignments, &snap.Assignments},
	}
	for _, l := range loads {
		rows, err := c.fetchTable(ctx, l.table)
		if err != nil {
			return nil, err
		}
		*l.dst = Table{Name: l.table, Rows: rows}
	}
	return snap, nil
}

// fetchTable retrieves one table's records, flattening {id, fields} into
// the generic Row shape the builder expects.
func (c *Client) fetchTable(ctx context.Context, table string) ([]Row, error) {
	endpoint := fmt.Sprintf("%s/api/docs/%s/tables/%s/records",
		c.cfg.BaseURL, url.PathEscape(c.cfg.DocID), url.PathEscape(table))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", table, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grist API request for %q failed: %w", table, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("grist API %d on %q: %s", resp.StatusCode, table, strings.TrimSpace(string(body)))
	}

	var payload recordsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding records of %q: %w", table, err)
	}

	rows := make([]Row, 0, len(payload.Records))
	for _, rec := range payload.Records {
		row := make(Row, len(rec.Fields)+1)
		row["id"] = rec.ID
		for k, v := range rec.Fields {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
