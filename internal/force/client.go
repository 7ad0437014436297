// Package force is a minimal Salesforce REST API client: password-grant
// login, object describe, SOQL queries, and bulk query jobs. It produces the
// field metadata that the schema builder consumes.
package force

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/forcekit/forcesql/internal/sferr"
)

const (
	// DefaultLoginEndpoint is the production Salesforce login endpoint.
	DefaultLoginEndpoint = "https://login.salesforce.com"

	// DefaultAPIVersion is the REST API version used when none is configured.
	DefaultAPIVersion = "v49.0"
)

// AccessToken holds a bearer token issued by the token endpoint.
type AccessToken struct {
	TokenType string
	Value     string
	IssuedAt  string
}

// Client talks to the Salesforce REST API. Create one with NewClient and
// call LoginWithCredentials before any authenticated method.
//
// Example:
//
//	client, err := force.NewClient(
//	    force.WithCredentials(clientID, clientSecret),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := client.LoginWithCredentials(ctx, user, pass); err != nil {
//	    return err
//	}
//	desc, err := client.Describe(ctx, "Account")
type Client struct {
	httpClient    *http.Client
	clientID      string
	clientSecret  string
	loginEndpoint string
	version       string
	instanceURL   string
	basePath      string
	token         *AccessToken
}

// Option configures a Client.
type Option func(*Client)

// WithCredentials sets the connected app client id and secret.
func WithCredentials(id, secret string) Option {
	return func(c *Client) {
		c.clientID = id
		c.clientSecret = secret
	}
}

// WithLoginEndpoint overrides the login endpoint
// (e.g. https://test.salesforce.com for sandboxes).
func WithLoginEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.loginEndpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithAPIVersion overrides the REST API version (e.g. "v49.0").
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.version = version
	}
}

// WithInstanceURL presets the instance URL. Normally it is taken from the
// token response during login.
func WithInstanceURL(instanceURL string) Option {
	return func(c *Client) {
		c.instanceURL = strings.TrimRight(instanceURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client with the given options.
// WithCredentials is required.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient:    http.DefaultClient,
		loginEndpoint: DefaultLoginEndpoint,
		version:       DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.clientID == "" {
		return nil, sferr.New(sferr.ErrClientConfig, "client id is required")
	}
	if c.clientSecret == "" {
		return nil, sferr.New(sferr.ErrClientConfig, "client secret is required")
	}

	return c, nil
}

// InstanceURL returns the instance URL established during login.
func (c *Client) InstanceURL() string {
	return c.instanceURL
}

// Authenticated reports whether the client holds an access token.
func (c *Client) Authenticated() bool {
	return c.token != nil
}

// LoginWithCredentials logs into the REST API using the OAuth2 password
// grant and stores the issued access token and instance URL.
// See https://developer.salesforce.com/docs/atlas.en-us.api_iot.meta/api_iot/qs_auth_access_token.htm
func (c *Client) LoginWithCredentials(ctx context.Context, username, password string) error {
	tokenURL := c.loginEndpoint + "/services/oauth2/token"
	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"username":      {username},
		"password":      {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return sferr.Wrap(sferr.ErrAPIRequest, err, "failed to build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return sferr.Wrap(sferr.ErrAPIRequest, err, "token request failed")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var te tokenError
		if err := json.NewDecoder(res.Body).Decode(&te); err != nil {
			return sferr.Wrap(sferr.ErrAPIDecode, err, "failed to decode token error response").
				With("status", res.StatusCode)
		}
		return sferr.New(sferr.ErrTokenRequest, "token request was rejected").
			With("error", te.Error).
			With("description", te.ErrorDescription).
			With("status", res.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		return sferr.Wrap(sferr.ErrAPIDecode, err, "failed to decode token response")
	}
	if tr.TokenType == "" {
		return sferr.New(sferr.ErrTokenRequest, "token response is missing token_type")
	}

	c.token = &AccessToken{
		TokenType: tr.TokenType,
		Value:     tr.AccessToken,
		IssuedAt:  tr.IssuedAt,
	}
	c.instanceURL = strings.TrimRight(tr.InstanceURL, "/")
	c.basePath = fmt.Sprintf("%s/services/data/%s", c.instanceURL, c.version)

	return nil
}

// Describe fetches the object describe metadata for the named SObject.
func (c *Client) Describe(ctx context.Context, name string) (*Describe, error) {
	data, err := c.DescribeRaw(ctx, name)
	if err != nil {
		return nil, err
	}
	return ParseDescribe(data)
}

// DescribeRaw fetches the raw describe JSON for the named SObject.
// The raw document is what the metadata cache stores and what the offline
// render command consumes.
func (c *Client) DescribeRaw(ctx context.Context, name string) ([]byte, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}
	reqURL := fmt.Sprintf("%s/sobjects/%s/describe", base, url.PathEscape(name))

	data, err := c.getRaw(ctx, reqURL, nil)
	if err != nil {
		if e, ok := err.(*sferr.Error); ok {
			e.WithObject(name)
		}
		return nil, err
	}
	return data, nil
}

// Query performs a SOQL query.
func (c *Client) Query(ctx context.Context, soql string) (*QueryResponse, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}
	reqURL := base + "/query"

	var qr QueryResponse
	if err := c.get(ctx, reqURL, url.Values{"q": {soql}}, &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}

// CreateQueryJob creates a bulk query job selecting the given fields from an
// object.
func (c *Client) CreateQueryJob(ctx context.Context, object string, fields []string) (*BulkQueryStatus, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}

	body := map[string]string{
		"operation": "query",
		"query":     fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ","), object),
	}

	var status BulkQueryStatus
	if err := c.send(ctx, http.MethodPost, base+"/jobs/query", body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// QueryJobStatus fetches the status of a previously created bulk query job.
func (c *Client) QueryJobStatus(ctx context.Context, jobID string) (*BulkQueryStatus, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}

	var status BulkQueryStatus
	if err := c.get(ctx, base+"/jobs/query/"+url.PathEscape(jobID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// AbortQueryJob aborts a bulk query job. Only jobs in the UploadComplete or
// InProgress states can be aborted.
func (c *Client) AbortQueryJob(ctx context.Context, jobID string) (*BulkQueryStatus, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}

	body := map[string]string{"state": string(BulkAborted)}

	var status BulkQueryStatus
	if err := c.send(ctx, http.MethodPatch, base+"/jobs/query/"+url.PathEscape(jobID), body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// base returns the API base path, failing if the client has not logged in.
func (c *Client) base() (string, error) {
	if c.basePath == "" {
		return "", sferr.New(sferr.ErrNotAuthenticated, "must login first").
			WithHelp("call LoginWithCredentials before any API method")
	}
	return c.basePath, nil
}

// get performs an authenticated GET with JSON decoding into out.
func (c *Client) get(ctx context.Context, reqURL string, params url.Values, out any) error {
	data, err := c.getRaw(ctx, reqURL, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return sferr.Wrap(sferr.ErrAPIDecode, err, "failed to decode response")
	}
	return nil
}

// getRaw performs an authenticated GET returning the raw body.
func (c *Client) getRaw(ctx context.Context, reqURL string, params url.Values) ([]byte, error) {
	if params != nil {
		reqURL = reqURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, sferr.Wrap(sferr.ErrAPIRequest, err, "failed to build request")
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, sferr.Wrap(sferr.ErrAPIRequest, err, "request failed")
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, sferr.Wrap(sferr.ErrAPIRequest, err, "failed to read response body")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, decodeAPIError(res.StatusCode, data)
	}
	return data, nil
}

// send performs an authenticated request with a JSON payload, decoding the
// JSON response into out.
func (c *Client) send(ctx context.Context, method, reqURL string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return sferr.Wrap(sferr.ErrAPIRequest, err, "failed to encode request payload")
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(body))
	if err != nil {
		return sferr.Wrap(sferr.ErrAPIRequest, err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return sferr.Wrap(sferr.ErrAPIRequest, err, "request failed")
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return sferr.Wrap(sferr.ErrAPIRequest, err, "failed to read response body")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return sferr.Wrap(sferr.ErrAPIDecode, err, "failed to decode response")
	}
	return nil
}

// authorize sets the default headers for authenticated requests.
func (c *Client) authorize(req *http.Request) error {
	if c.token == nil {
		return sferr.New(sferr.ErrNotAuthenticated, "must login first").
			WithHelp("call LoginWithCredentials before any API method")
	}
	req.Header.Set("Authorization", "Bearer "+c.token.Value)
	req.Header.Set("Accept", "application/json")
	return nil
}

// decodeAPIError maps a non-2xx API response body to a coded error.
// Most endpoints return a JSON array of error objects.
func decodeAPIError(status int, data []byte) error {
	var errs []apiError
	if err := json.Unmarshal(data, &errs); err == nil && len(errs) > 0 {
		e := sferr.Newf(sferr.ErrAPIResponse, "request failed (%s)", errs[0].Message).
			With("code", errs[0].ErrorCode).
			With("status", status)
		if len(errs[0].Fields) > 0 {
			e.With("fields", strings.Join(errs[0].Fields, ", "))
		}
		return e
	}

	var single apiError
	if err := json.Unmarshal(data, &single); err == nil && single.Message != "" {
		return sferr.Newf(sferr.ErrAPIResponse, "request failed (%s)", single.Message).
			With("code", single.ErrorCode).
			With("status", status)
	}

	return sferr.New(sferr.ErrAPIResponse, "request failed").
		With("status", status)
}
