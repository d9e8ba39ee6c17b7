package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config represents the configuration for the jobdesk client
type Config struct {
	// BaseURL is the base URL of the API, including the /api prefix
	BaseURL string
	// Token is the employer's bearer token
	Token string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080/api",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client drives the authoring API on behalf of one employer
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// Company is the company an employer's postings are locked to
type Company struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	LogoURL  string    `json:"logo_url"`
	Industry string    `json:"industry"`
}

// Session is the state of an authoring session. Form is left raw since its
// shape depends on the opportunity type.
type Session struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Step           string          `json:"step"`
	StepNumber     int             `json:"step_number"`
	Form           json.RawMessage `json:"form"`
	OpportunityID  *uuid.UUID      `json:"opportunity_id,omitempty"`
	Revision       int64           `json:"revision,omitempty"`
	Company        *Company        `json:"company,omitempty"`
	CompanyMissing bool            `json:"company_missing"`
	WasVerified    bool            `json:"was_verified"`
	CriticalFields []string        `json:"critical_fields,omitempty"`
	SubmitDisabled bool            `json:"submit_disabled"`
}

// SaveResult reports a publish or draft save
type SaveResult struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	Revision      int64     `json:"revision"`
	IsDraft       bool      `json:"is_draft"`
	Created       bool      `json:"created"`
	Verified      *bool     `json:"verified,omitempty"`
	ReviewOutcome string    `json:"review_outcome"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
	Message       string    `json:"message"`
}

// AuditEntry is one write recorded against an opportunity
type AuditEntry struct {
	ID              uuid.UUID              `json:"id"`
	ActionType      string                 `json:"action_type"`
	OpportunityType string                 `json:"opportunity_type"`
	OpportunityID   uuid.UUID              `json:"opportunity_id"`
	EmployerID      uuid.UUID              `json:"employer_id"`
	Verified        *bool                  `json:"verified,omitempty"`
	Context         map[string]interface{} `json:"context,omitempty"`
	RequestID       string                 `json:"request_id,omitempty"`
	Timestamp       time.Time              `json:"timestamp"`
}

// AuditTrail is one page of audit entries
type AuditTrail struct {
	Logs  []AuditEntry `json:"logs"`
	Total int64        `json:"total"`
}

// MyCompany returns the company resolved for the caller.
func (c *Client) MyCompany(ctx context.Context) (*Company, error) {
	var resp struct {
		Company *Company `json:"company"`
	}
	if err := c.do(ctx, http.MethodGet, "/companies/mine", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Company, nil
}

// StartSession opens a session for a new posting of type t.
func (c *Client) StartSession(ctx context.Context, t string) (*Session, error) {
	if t == "" {
		return nil, errors.New("type is required")
	}
	return c.session(ctx, http.MethodPost, "/postings/sessions", map[string]string{"type": t})
}

// EditSession opens a session on a stored posting.
func (c *Client) EditSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return c.session(ctx, http.MethodPost, "/postings/sessions", map[string]uuid.UUID{"opportunity_id": id})
}

func (c *Client) Session(ctx context.Context, sid string) (*Session, error) {
	return c.session(ctx, http.MethodGet, sessionPath(sid), nil)
}

// Discard drops a session. Saved postings are kept.
func (c *Client) Discard(ctx context.Context, sid string) error {
	return c.do(ctx, http.MethodDelete, sessionPath(sid), nil, nil)
}

func (c *Client) SwitchType(ctx context.Context, sid, t string) (*Session, error) {
	return c.session(ctx, http.MethodPut, sessionPath(sid, "type"), map[string]string{"type": t})
}

// SetFields assigns scalar fields. Either every value is applied or none.
func (c *Client) SetFields(ctx context.Context, sid string, values map[string]string) (*Session, error) {
	if len(values) == 0 {
		return nil, errors.New("at least one field is required")
	}
	return c.session(ctx, http.MethodPatch, sessionPath(sid, "fields"), values)
}

// SetListText replaces a list with line-delimited text.
func (c *Client) SetListText(ctx context.Context, sid, list, text string) (*Session, error) {
	return c.session(ctx, http.MethodPut, sessionPath(sid, "lists", list), map[string]string{"text": text})
}

func (c *Client) AddLine(ctx context.Context, sid, list string) (*Session, error) {
	return c.session(ctx, http.MethodPost, sessionPath(sid, "lists", list, "lines"), nil)
}

func (c *Client) SetLine(ctx context.Context, sid, list string, index int, value string) (*Session, error) {
	path := sessionPath(sid, "lists", list, "lines", strconv.Itoa(index))
	return c.session(ctx, http.MethodPut, path, map[string]string{"value": value})
}

func (c *Client) RemoveLine(ctx context.Context, sid, list string, index int) (*Session, error) {
	return c.session(ctx, http.MethodDelete, sessionPath(sid, "lists", list, "lines", strconv.Itoa(index)), nil)
}

func (c *Client) AddGroup(ctx context.Context, sid string) (*Session, error) {
	return c.session(ctx, http.MethodPost, sessionPath(sid, "operations"), nil)
}

func (c *Client) SetHeading(ctx context.Context, sid string, group int, heading string) (*Session, error) {
	path := sessionPath(sid, "operations", strconv.Itoa(group))
	return c.session(ctx, http.MethodPut, path, map[string]string{"heading": heading})
}

func (c *Client) RemoveGroup(ctx context.Context, sid string, group int) (*Session, error) {
	return c.session(ctx, http.MethodDelete, sessionPath(sid, "operations", strconv.Itoa(group)), nil)
}

func (c *Client) AddItem(ctx context.Context, sid string, group int) (*Session, error) {
	return c.session(ctx, http.MethodPost, sessionPath(sid, "operations", strconv.Itoa(group), "items"), nil)
}

func (c *Client) SetItem(ctx context.Context, sid string, group, index int, value string) (*Session, error) {
	path := sessionPath(sid, "operations", strconv.Itoa(group), "items", strconv.Itoa(index))
	return c.session(ctx, http.MethodPut, path, map[string]string{"value": value})
}

func (c *Client) RemoveItem(ctx context.Context, sid string, group, index int) (*Session, error) {
	path := sessionPath(sid, "operations", strconv.Itoa(group), "items", strconv.Itoa(index))
	return c.session(ctx, http.MethodDelete, path, nil)
}

// Next moves to the following step when the current one allows it.
func (c *Client) Next(ctx context.Context, sid string) (*Session, error) {
	return c.session(ctx, http.MethodPost, sessionPath(sid, "next"), nil)
}

func (c *Client) Back(ctx context.Context, sid string) (*Session, error) {
	return c.session(ctx, http.MethodPost, sessionPath(sid, "back"), nil)
}

// Publish validates and saves the posting.
func (c *Client) Publish(ctx context.Context, sid string) (*SaveResult, error) {
	var resp SaveResult
	if err := c.do(ctx, http.MethodPost, sessionPath(sid, "publish"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveDraft saves the posting as a draft without validation.
func (c *Client) SaveDraft(ctx context.Context, sid string) (*SaveResult, error) {
	var resp SaveResult
	if err := c.do(ctx, http.MethodPost, sessionPath(sid, "draft"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Audit returns one page of the audit trail of a posting.
func (c *Client) Audit(ctx context.Context, id uuid.UUID, limit, offset int) (*AuditTrail, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/postings/" + id.String() + "/audit"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp AuditTrail
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// APIError is the error body returned by the API
type APIError struct {
	StatusCode int      `json:"-"`
	Code       string   `json:"error_code,omitempty"`
	Message    string   `json:"error"`
	Details    []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (Status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// IsCode reports whether err is an API error with the given error code,
// such as "stale_revision" or "company_required".
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func (c *Client) session(ctx context.Context, method, path string, body interface{}) (*Session, error) {
	var resp Session
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends one request and decodes a successful response into resp when it
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.config.BaseURL, "/")+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil {
			// If we can't decode the error, create a generic one
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if resp == nil || httpResp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func sessionPath(sid string, parts ...string) string {
	segments := append([]string{"/postings/sessions", url.PathEscape(sid)}, parts...)
	return strings.Join(segments, "/")
}
