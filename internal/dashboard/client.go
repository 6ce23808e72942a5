package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lostfound/moderation/types"
)

const defaultClientTimeout = 10 * time.Second

// APIError is a non-2xx answer from the moderation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("moderation api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("moderation api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the moderation API over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient constructs a Client for baseURL. A nil httpClient gets a
// default one with a timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("api url must be http or https")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	return &Client{baseURL: u, httpClient: httpClient}, nil
}

type itemList struct {
	Items []types.Item `json:"items"`
}

type userList struct {
	Users []types.User `json:"users"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) ListItems(ctx context.Context) ([]types.Item, error) {
	var out itemList
	if err := c.do(ctx, http.MethodGet, "/api/admin/items", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	var out userList
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) SetItemStatus(ctx context.Context, id string, status types.ItemStatus) (types.Item, error) {
	var out types.Item
	err := c.do(ctx, http.MethodPut, "/api/admin/items/"+url.PathEscape(id), statusRequest{Status: string(status)}, &out)
	return out, err
}

func (c *Client) SetUserStatus(ctx context.Context, id string, status types.UserStatus) (types.User, error) {
	var out types.User
	err := c.do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(id), statusRequest{Status: string(status)}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
