package force

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forcekit/forcesql/internal/sferr"
)

// newTestClient returns a client pointed at the test server, already
// configured with dummy credentials.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(
		WithCredentials("test-id", "test-secret"),
		WithLoginEndpoint(srv.URL),
		WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

// loginHandler serves a successful token response pointing back at the
// server itself as the instance URL.
func loginHandler(srvURL func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "session-token",
			InstanceURL: srvURL(),
			TokenType:   "Bearer",
			IssuedAt:    "1257894000000",
		})
	}
}

// -----------------------------------------------------------------------------
// Construction Tests
// -----------------------------------------------------------------------------

func TestNewClientRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"NoOptions", nil},
		{"MissingSecret", []Option{WithCredentials("id", "")}},
		{"MissingID", []Option{WithCredentials("", "secret")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.opts...)
			if err == nil {
				t.Fatal("NewClient() accepted missing credentials")
			}
			if got := sferr.CodeOf(err); got != sferr.ErrClientConfig {
				t.Errorf("error code = %s, want %s", got, sferr.ErrClientConfig)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(WithCredentials("id", "secret"))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if client.loginEndpoint != DefaultLoginEndpoint {
		t.Errorf("loginEndpoint = %q, want %q", client.loginEndpoint, DefaultLoginEndpoint)
	}
	if client.version != DefaultAPIVersion {
		t.Errorf("version = %q, want %q", client.version, DefaultAPIVersion)
	}
	if client.Authenticated() {
		t.Error("fresh client reports authenticated")
	}
}

func TestWithLoginEndpointTrimsSlash(t *testing.T) {
	client, err := NewClient(
		WithCredentials("id", "secret"),
		WithLoginEndpoint("https://test.salesforce.com/"),
	)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if client.loginEndpoint != "https://test.salesforce.com" {
		t.Errorf("loginEndpoint = %q, want trailing slash trimmed", client.loginEndpoint)
	}
}

// -----------------------------------------------------------------------------
// Login Tests
// -----------------------------------------------------------------------------

func TestLoginWithCredentials(t *testing.T) {
	var gotForm map[string]string
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error: %v", err)
		}
		gotForm = map[string]string{
			"grant_type":    r.PostFormValue("grant_type"),
			"client_id":     r.PostFormValue("client_id"),
			"client_secret": r.PostFormValue("client_secret"),
			"username":      r.PostFormValue("username"),
			"password":      r.PostFormValue("password"),
		}
		loginHandler(func() string { return srv.URL })(w, r)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	if err := client.LoginWithCredentials(context.Background(), "user@example.com", "hunter2"); err != nil {
		t.Fatalf("LoginWithCredentials() error: %v", err)
	}

	if gotForm["grant_type"] != "password" {
		t.Errorf("grant_type = %q, want %q", gotForm["grant_type"], "password")
	}
	if gotForm["client_id"] != "test-id" || gotForm["client_secret"] != "test-secret" {
		t.Errorf("credentials = %q/%q, want test-id/test-secret", gotForm["client_id"], gotForm["client_secret"])
	}
	if gotForm["username"] != "user@example.com" || gotForm["password"] != "hunter2" {
		t.Errorf("user credentials not forwarded: %v", gotForm)
	}

	if !client.Authenticated() {
		t.Error("client not authenticated after login")
	}
	if client.InstanceURL() != srv.URL {
		t.Errorf("InstanceURL() = %q, want %q", client.InstanceURL(), srv.URL)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(tokenError{
			Error:            "invalid_grant",
			ErrorDescription: "authentication failure",
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	err := client.LoginWithCredentials(context.Background(), "user", "wrong")
	if err == nil {
		t.Fatal("LoginWithCredentials() accepted a rejected token request")
	}
	if got := sferr.CodeOf(err); got != sferr.ErrTokenRequest {
		t.Errorf("error code = %s, want %s", got, sferr.ErrTokenRequest)
	}
	if client.Authenticated() {
		t.Error("client authenticated after rejected login")
	}
}

func TestMethodsRequireLogin(t *testing.T) {
	client, err := NewClient(WithCredentials("id", "secret"))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	ctx := context.Background()
	calls := []struct {
		name string
		call func() error
	}{
		{"Describe", func() error { _, err := client.Describe(ctx, "Account"); return err }},
		{"Query", func() error { _, err := client.Query(ctx, "SELECT Id FROM Account"); return err }},
		{"CreateQueryJob", func() error { _, err := client.CreateQueryJob(ctx, "Account", []string{"Id"}); return err }},
		{"QueryJobStatus", func() error { _, err := client.QueryJobStatus(ctx, "750x0"); return err }},
		{"AbortQueryJob", func() error { _, err := client.AbortQueryJob(ctx, "750x0"); return err }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("call succeeded without login")
			}
			if got := sferr.CodeOf(err); got != sferr.ErrNotAuthenticated {
				t.Errorf("error code = %s, want %s", got, sferr.ErrNotAuthenticated)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Describe Tests
// -----------------------------------------------------------------------------

func TestDescribe(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		loginHandler(func() string { return srv.URL })(w, r)
	})
	mux.HandleFunc("/services/data/v49.0/sobjects/Account/describe", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer session-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		json.NewEncoder(w).Encode(Describe{
			Name: "Account",
			Fields: []Field{
				{Name: "Id", Type: FieldID},
				{Name: "Name", Type: FieldString, Length: 255},
			},
		})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	ctx := context.Background()
	if err := client.LoginWithCredentials(ctx, "user", "pass"); err != nil {
		t.Fatalf("LoginWithCredentials() error: %v", err)
	}

	desc, err := client.Describe(ctx, "Account")
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if desc.Name != "Account" {
		t.Errorf("Name = %q, want %q", desc.Name, "Account")
	}
	if len(desc.Fields) != 2 || desc.Fields[0].Name != "Id" {
		t.Errorf("Fields = %+v", desc.Fields)
	}
}

func TestDescribeNotFound(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		loginHandler(func() string { return srv.URL })(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode([]apiError{{
			Message:   "The requested resource does not exist",
			ErrorCode: "NOT_FOUND",
		}})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	ctx := context.Background()
	if err := client.LoginWithCredentials(ctx, "user", "pass"); err != nil {
		t.Fatalf("LoginWithCredentials() error: %v", err)
	}

	_, err := client.Describe(ctx, "NoSuchObject")
	if err == nil {
		t.Fatal("Describe() succeeded for a missing object")
	}
	if got := sferr.CodeOf(err); got != sferr.ErrAPIResponse {
		t.Errorf("error code = %s, want %s", got, sferr.ErrAPIResponse)
	}
}

// -----------------------------------------------------------------------------
// Query Tests
// -----------------------------------------------------------------------------

func TestQuery(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		loginHandler(func() string { return srv.URL })(w, r)
	})
	mux.HandleFunc("/services/data/v49.0/query", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "SELECT Id FROM Account" {
			t.Errorf("q = %q, want the SOQL text", got)
		}
		json.NewEncoder(w).Encode(QueryResponse{
			TotalSize: 1,
			Done:      true,
			Records:   []json.RawMessage{json.RawMessage(`{"Id":"001x0"}`)},
		})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	ctx := context.Background()
	if err := client.LoginWithCredentials(ctx, "user", "pass"); err != nil {
		t.Fatalf("LoginWithCredentials() error: %v", err)
	}

	qr, err := client.Query(ctx, "SELECT Id FROM Account")
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if qr.TotalSize != 1 || !qr.Done || len(qr.Records) != 1 {
		t.Errorf("QueryResponse = %+v", qr)
	}
}

// -----------------------------------------------------------------------------
// Bulk Query Job Tests
// -----------------------------------------------------------------------------

func TestCreateQueryJob(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		loginHandler(func() string { return srv.URL })(w, r)
	})
	mux.HandleFunc("/services/data/v49.0/jobs/query", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["operation"] != "query" {
			t.Errorf("operation = %q, want %q", body["operation"], "query")
		}
		if body["query"] != "SELECT Id,Name FROM Account" {
			t.Errorf("query = %q", body["query"])
		}
		json.NewEncoder(w).Encode(BulkQueryStatus{
			ID:     "750x0",
			Object: "Account",
			State:  BulkUploadComplete,
		})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	ctx := context.Background()
	if err := client.LoginWithCredentials(ctx, "user", "pass"); err != nil {
		t.Fatalf("LoginWithCredentials() error: %v", err)
	}

	status, err := client.CreateQueryJob(ctx, "Account", []string{"Id", "Name"})
	if err != nil {
		t.Fatalf("CreateQueryJob() error: %v", err)
	}
	if status.ID != "750x0" || status.State != BulkUploadComplete {
		t.Errorf("BulkQueryStatus = %+v", status)
	}
}

func TestAbortQueryJob(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		loginHandler(func() string { return srv.URL })(w, r)
	})
	mux.HandleFunc("/services/data/v49.0/jobs/query/750x0", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %q, want PATCH", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["state"] != string(BulkAborted) {
			t.Errorf("state = %q, want %q", body["state"], BulkAborted)
		}
		json.NewEncoder(w).Encode(BulkQueryStatus{ID: "750x0", State: BulkAborted})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	ctx := context.Background()
	if err := client.LoginWithCredentials(ctx, "user", "pass"); err != nil {
		t.Fatalf("LoginWithCredentials() error: %v", err)
	}

	status, err := client.AbortQueryJob(ctx, "750x0")
	if err != nil {
		t.Fatalf("AbortQueryJob() error: %v", err)
	}
	if status.State != BulkAborted {
		t.Errorf("State = %q, want %q", status.State, BulkAborted)
	}
}
