package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Client fetches the Apex API server status.
type Client interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a status client for the Apex API /servers endpoint.
func NewClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type regionState struct {
	Status string `json:"Status"`
}

// Fetch retrieves the current status, retrying transient failures with
// exponential backoff.
func (c *httpClient) Fetch(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	operation := func() error {
		var err error
		snap, err = c.fetchOnce(ctx)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return Snapshot{RetrievedAt: time.Now(), FetchError: err.Error()}, err
	}
	return snap, nil
}

func (c *httpClient) fetchOnce(ctx context.Context) (Snapshot, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Snapshot{}, backoff.Permanent(fmt.Errorf("invalid status URL: %w", err))
	}
	q := u.Query()
	q.Set("auth", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Snapshot{}, backoff.Permanent(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status endpoint returned %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return Snapshot{}, backoff.Permanent(err)
		}
		return Snapshot{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, err
	}
	return parseSnapshot(body)
}

// parseSnapshot maps the /servers payload (service -> region -> state) into
// a flat per-service view: a service is healthy when all its regions are UP.
func parseSnapshot(body []byte) (Snapshot, error) {
	var raw map[string]map[string]regionState
	if err := json.Unmarshal(body, &raw); err != nil {
		return Snapshot{}, backoff.Permanent(fmt.Errorf("failed to decode status payload: %w", err))
	}

	snap := Snapshot{RetrievedAt: time.Now()}
	serviceNames := make([]string, 0, len(raw))
	for name := range raw {
		serviceNames = append(serviceNames, name)
	}
	sort.Strings(serviceNames)

	for _, name := range serviceNames {
		regions := raw[name]
		healthy := len(regions) > 0
		var down []string
		for region, state := range regions {
			if !strings.EqualFold(state.Status, "UP") {
				healthy = false
				down = append(down, region)
			}
		}
		sort.Strings(down)
		detail := "Operativo"
		if !healthy {
			detail = "Caído: " + strings.Join(down, ", ")
			if len(down) == 0 {
				detail = "Sin datos de región"
			}
		}
		snap.Services = append(snap.Services, ServiceStatus{
			Name:    name,
			Healthy: healthy,
			Detail:  detail,
		})
	}
	return snap, nil
}
