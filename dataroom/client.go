// Package dataroom is the typed client for the data-room management API: the
// remote service that owns projects, data rooms, folders, documents, and
// users. The ingestion pipeline hands its extracted text to CreateDocument;
// everything else mirrors the administrative surface of the service.
package dataroom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// DefaultBaseURL is the development address of the data-room service.
const DefaultBaseURL = "http://127.0.0.1:8000"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DocumentCreator is the narrow seam the ingestion pipeline's output flows
// through. The full Client satisfies it.
type DocumentCreator interface {
	CreateDocument(ctx context.Context, in DocumentIn) (*Document, error)
}

// ValidationIssue is one entry of the service's validation error detail.
type ValidationIssue struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

func (v ValidationIssue) String() string {
	parts := make([]string, 0, len(v.Loc))
	for _, l := range v.Loc {
		switch t := l.(type) {
		case string:
			parts = append(parts, t)
		case float64:
			parts = append(parts, strconv.Itoa(int(t)))
		default:
			parts = append(parts, fmt.Sprint(t))
		}
	}
	return fmt.Sprintf("%s: %s", strings.Join(parts, "."), v.Msg)
}

// APIError is a non-2xx response from the service, carrying decoded
// validation detail when present.
type APIError struct {
	StatusCode int
	Detail     []ValidationIssue
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Detail) > 0 {
		msgs := make([]string, len(e.Detail))
		for i, d := range e.Detail {
			msgs[i] = d.String()
		}
		return strings.Join(msgs, ", ")
	}
	return fmt.Sprintf("dataroom: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the data-room service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option mutates a Client under construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient builds a client for the service at baseURL (DefaultBaseURL when
// empty).
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("dataroom: encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("dataroom: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dataroom: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("dataroom: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		var detail struct {
			Detail []ValidationIssue `json:"detail"`
		}
		if err := json.Unmarshal(data, &detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("dataroom: decode response: %w", err)
		}
	}
	return nil
}

// Projects.

func (c *Client) CreateProject(ctx context.Context, in ProjectIn) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Project(ctx context.Context, projectID string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProjectDataRooms(ctx context.Context, projectID string) ([]DataRoom, error) {
	var out []DataRoom
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/data-rooms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProjectUsers(ctx context.Context, projectID string) ([]ProjectUser, error) {
	var out []ProjectUser
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LinkDataRoom(ctx context.Context, projectID, dataRoomID string) error {
	return c.do(ctx, http.MethodPost, "/projects/"+projectID+"/data-rooms/"+dataRoomID, nil, nil)
}

func (c *Client) UnlinkDataRoom(ctx context.Context, projectID, dataRoomID string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+projectID+"/data-rooms/"+dataRoomID, nil, nil)
}

func (c *Client) AddUserToProject(ctx context.Context, projectID, userID string, body AddUserBody) error {
	return c.do(ctx, http.MethodPost, "/projects/"+projectID+"/users/"+userID, body, nil)
}

func (c *Client) RemoveUserFromProject(ctx context.Context, projectID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+projectID+"/users/"+userID, nil, nil)
}

// Data rooms.

func (c *Client) CreateDataRoom(ctx context.Context, in DataRoomIn) (*DataRoom, error) {
	var out DataRoom
	if err := c.do(ctx, http.MethodPost, "/data-rooms", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DataRoom(ctx context.Context, dataRoomID string) (*DataRoom, error) {
	var out DataRoom
	if err := c.do(ctx, http.MethodGet, "/data-rooms/"+dataRoomID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DocumentTree(ctx context.Context, dataRoomID string) (*DocumentTree, error) {
	var out DocumentTree
	if err := c.do(ctx, http.MethodGet, "/data-rooms/"+dataRoomID+"/document-tree", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Folders and documents.

func (c *Client) CreateFolder(ctx context.Context, in FolderIn) (*Folder, error) {
	var out Folder
	if err := c.do(ctx, http.MethodPost, "/folders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDocument(ctx context.Context, in DocumentIn) (*Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodPost, "/documents", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users.

func (c *Client) CreateUser(ctx context.Context, in UserIn) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) User(ctx context.Context, userID string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AccessibleProjects(ctx context.Context, userID string) ([]AccessibleProject, error) {
	var out []AccessibleProject
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
