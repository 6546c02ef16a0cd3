package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// IdentityClient talks to the hosted auth service. Password verification,
// account storage and invite-email delivery all live there; this service
// only proxies and merges. The service key is required for the admin
// directory endpoints (invites, user listing) and may be absent.
type IdentityClient struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewIdentityClient(baseURL, anonKey, serviceKey string, logger *logrus.Logger) *IdentityClient {
	if baseURL != "" && !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	return &IdentityClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// HasDirectory reports whether the privileged directory endpoints are usable.
func (ic *IdentityClient) HasDirectory() bool {
	return ic.baseURL != "" && ic.serviceKey != ""
}

// AuthUser is the identity service's view of an account.
type AuthUser struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	LastSignInAt *string `json:"last_sign_in_at"`
}

// InviteMetadata is attached to an invite so the profile can be
// materialized for the right organization once the user accepts.
type InviteMetadata struct {
	OrgID     string  `json:"org_id"`
	Role      string  `json:"role"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  bool    `json:"is_active"`
}

func (ic *IdentityClient) makeRequest(ctx context.Context, method, endpoint, key string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, ic.baseURL+"/auth/v1"+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ic.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("auth request failed with status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// SignInWithPassword verifies credentials against the auth service and
// returns the authenticated account.
func (ic *IdentityClient) SignInWithPassword(ctx context.Context, email, password string) (*AuthUser, error) {
	if ic.baseURL == "" {
		return nil, fmt.Errorf("identity service not configured")
	}

	data, err := ic.makeRequest(ctx, http.MethodPost, "/token?grant_type=password", ic.anonKey, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		User AuthUser `json:"user"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse sign-in response: %w", err)
	}
	if result.User.ID == "" {
		return nil, fmt.Errorf("sign-in response contained no user")
	}
	return &result.User, nil
}

// InviteByEmail asks the auth service to create an account and send the
// invitation email. Returns the invited user's id.
func (ic *IdentityClient) InviteByEmail(ctx context.Context, email string, metadata InviteMetadata) (string, error) {
	if !ic.HasDirectory() {
		return "", fmt.Errorf("identity service role key not configured")
	}

	data, err := ic.makeRequest(ctx, http.MethodPost, "/invite", ic.serviceKey, map[string]interface{}{
		"email": email,
		"data":  metadata,
	})
	if err != nil {
		return "", err
	}

	var invited AuthUser
	if err := json.Unmarshal(data, &invited); err != nil {
		return "", fmt.Errorf("failed to parse invite response: %w", err)
	}
	if invited.ID == "" {
		return "", fmt.Errorf("invite succeeded but user information was unavailable")
	}
	return invited.ID, nil
}

// ListUsers pages through the auth service's account directory.
func (ic *IdentityClient) ListUsers(ctx context.Context, page, perPage int) ([]AuthUser, error) {
	if !ic.HasDirectory() {
		return nil, fmt.Errorf("identity service role key not configured")
	}

	endpoint := fmt.Sprintf("/admin/users?page=%d&per_page=%d", page, perPage)
	data, err := ic.makeRequest(ctx, http.MethodGet, endpoint, ic.serviceKey, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Users []AuthUser `json:"users"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse user listing: %w", err)
	}
	return result.Users, nil
}
