package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/halcyra/cadence/internal/domain/event"
)

// HTTPStore is a Store backed by a remote JSON event API.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a client for the event API at baseURL. A nil
// httpClient falls back to http.DefaultClient; timeouts belong to the
// transport, not to this layer.
func NewHTTPStore(baseURL string, httpClient *http.Client) *HTTPStore {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  httpClient,
	}
}

// List fetches every base event.
func (s *HTTPStore) List(ctx context.Context) ([]event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list events", resp)
	}

	var wires []wireEvent
	if err := json.NewDecoder(resp.Body).Decode(&wires); err != nil {
		return nil, fmt.Errorf("decoding event list: %w", err)
	}
	events := make([]event.Event, 0, len(wires))
	for _, w := range wires {
		e, err := decodeEvent(w)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Create persists a new event and returns the stored version.
func (s *HTTPStore) Create(ctx context.Context, e event.Event) (event.Event, error) {
	body, err := json.Marshal(encodeEvent(e))
	if err != nil {
		return event.Event{}, fmt.Errorf("encoding event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return event.Event{}, fmt.Errorf("building create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return event.Event{}, statusError("create event", resp)
	}

	var w wireEvent
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return event.Event{}, fmt.Errorf("decoding created event: %w", err)
	}
	return decodeEvent(w)
}

// Update overwrites an existing event.
func (s *HTTPStore) Update(ctx context.Context, e event.Event) error {
	body, err := json.Marshal(encodeEvent(e))
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	u := s.baseURL + "/events/" + url.PathEscape(e.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusError("update event", resp)
	}
	return nil
}

// Delete removes one event by id.
func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	u := s.baseURL + "/events/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("building delete request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusError("delete event", resp)
	}
	return nil
}

// DeleteAll clears the store.
func (s *HTTPStore) DeleteAll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/events", nil)
	if err != nil {
		return fmt.Errorf("building delete-all request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusError("delete all events", resp)
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
