package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ymiyake/enquete/internal/client/models"
)

// RESTClient talks to the hosted identity and realtime-database REST API.
// The identity endpoints take the API key as a query parameter; every data
// request carries the current session's identity token as ?auth=.
type RESTClient struct {
	apiKey   string
	authBase string
	dbBase   string
	http     *http.Client
	session  *models.Session
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client for the given endpoints. authBase is the
// identity endpoint prefix (requests append ":signInWithPassword" etc.),
// dbBase is the database root URL.
func NewRESTClient(apiKey, authBase, dbBase string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		apiKey:   apiKey,
		authBase: strings.TrimRight(authBase, "/"),
		dbBase:   strings.TrimRight(dbBase, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// Session returns the current session. It is nil until a successful
// SignIn or SignUp.
func (c *RESTClient) Session() *models.Session {
	return c.session
}

// identityRequest is the body of both sign-in and sign-up calls.
type identityRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// identityResponse is the success payload of the identity endpoints.
type identityResponse struct {
	IDToken      string `json:"idToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
}

// errorResponse is the failure payload shared by all endpoints.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *RESTClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return c.identityCall(ctx, "signInWithPassword", email, password)
}

func (c *RESTClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	return c.identityCall(ctx, "signUp", email, password)
}

// identityCall performs one identity operation. The session field is only
// replaced on success, so a failed call leaves prior credentials intact.
func (c *RESTClient) identityCall(ctx context.Context, op, email, password string) (*models.Session, error) {
	url := fmt.Sprintf("%s:%s?key=%s", c.authBase, op, c.apiKey)

	body, err := json.Marshal(identityRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, rejection(resp.StatusCode, data)
	}

	var ir identityResponse
	if err := json.Unmarshal(data, &ir); err != nil {
		return nil, fmt.Errorf("%w: malformed identity response: %v", ErrRejected, err)
	}

	session := &models.Session{
		IDToken:      ir.IDToken,
		UserID:       ir.LocalID,
		Email:        ir.Email,
		RefreshToken: ir.RefreshToken,
	}
	c.session = session
	return session, nil
}

func (c *RESTClient) dataURL(path string) string {
	token := ""
	if c.session != nil {
		token = c.session.IDToken
	}
	return fmt.Sprintf("%s/%s.json?auth=%s", c.dbBase, strings.Trim(path, "/"), token)
}

func (c *RESTClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, c.dataURL(path), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, rejection(resp.StatusCode, data)
	}

	// The store answers "null" for absent nodes; flatten that to no data.
	if isNull(data) {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

func (c *RESTClient) Post(ctx context.Context, path string, v any) (string, error) {
	data, err := c.write(ctx, http.MethodPost, path, v)
	if err != nil {
		return "", err
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("%w: malformed post response: %v", ErrRejected, err)
	}
	return result.Name, nil
}

func (c *RESTClient) Put(ctx context.Context, path string, v any) error {
	_, err := c.write(ctx, http.MethodPut, path, v)
	return err
}

func (c *RESTClient) Patch(ctx context.Context, path string, v any) error {
	_, err := c.write(ctx, http.MethodPatch, path, v)
	return err
}

func (c *RESTClient) write(ctx context.Context, method, path string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, c.dataURL(path), body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, rejection(resp.StatusCode, data)
	}
	return data, nil
}

func (c *RESTClient) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// rejection converts a non-success response into ErrUnauthorized or
// ErrRejected, carrying the service's error message when one is present.
func rejection(status int, body []byte) error {
	var er errorResponse
	msg := ""
	if err := json.Unmarshal(body, &er); err == nil {
		msg = er.Error.Message
	}

	base := ErrRejected
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		base = ErrUnauthorized
	}
	if msg == "" {
		return fmt.Errorf("%w: status %d", base, status)
	}
	return fmt.Errorf("%w: %s", base, msg)
}

func isNull(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
