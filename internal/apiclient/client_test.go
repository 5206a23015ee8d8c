package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeCredentials struct {
	token  string
	clears int
}

func (f *fakeCredentials) Token(context.Context) (string, bool) {
	return f.token, f.token != ""
}

func (f *fakeCredentials) Clear(context.Context) {
	f.clears++
	f.token = ""
}

type recordingNotifier struct {
	notifications []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.notifications = append(r.notifications, n)
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"vendor_id": "v-1",
		"exp":       exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, handler http.HandlerFunc, creds Credentials, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL+"/v1", creds, opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New("/api", nil)
	assert.Error(t, err)
}

func TestRequest_AttachesBearerToken(t *testing.T) {
	token := signToken(t, time.Now().Add(time.Hour))
	var gotAuth, gotPath, gotRequestID string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(RequestIDHeader)
		writeJSON(w, http.StatusOK, `{"status":200,"error":false,"message":"ok","data":{"id":"p-1"}}`)
	}, &fakeCredentials{token: token})

	env, err := client.Get(context.Background(), "/products/p-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer "+token, gotAuth)
	assert.Equal(t, "/v1/products/p-1", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "ok", env.Message)

	data, err := DecodeData[map[string]string](env)
	require.NoError(t, err)
	assert.Equal(t, "p-1", data["id"])
}

func TestRequest_WithoutAuthSendsBasicCredential(t *testing.T) {
	token := signToken(t, time.Now().Add(time.Hour))
	var gotAuth string
	var basicUser, basicPass string
	var basicOK bool

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		basicUser, basicPass, basicOK = r.BasicAuth()
		writeJSON(w, http.StatusOK, `{"status":200,"error":false,"message":"ok"}`)
	}, &fakeCredentials{token: token}, WithBasicAuth("portal", "s3cret"))

	_, err := client.Get(context.Background(), "/categories", WithoutAuth())
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(gotAuth, "Bearer "))
	require.True(t, basicOK)
	assert.Equal(t, "portal", basicUser)
	assert.Equal(t, "s3cret", basicPass)
}

func TestRequest_WithoutAuthAndNoBasicCredential(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, `{"status":200,"error":false,"message":"ok"}`)
	}, &fakeCredentials{token: signToken(t, time.Now().Add(time.Hour))})

	_, err := client.Get(context.Background(), "/categories", WithoutAuth())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequest_ExpiredTokenIsNotSentAndSessionClearedOn401(t *testing.T) {
	creds := &fakeCredentials{token: signToken(t, time.Now().Add(-time.Minute))}
	var gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusUnauthorized, `{"status":401,"error":401,"messages":{"error":"missing token"}}`)
	}, creds)

	_, err := client.Get(context.Background(), "/dashboard/summary")
	require.Error(t, err)

	assert.Empty(t, gotAuth)
	assert.Equal(t, 1, creds.clears)
	assert.True(t, errors.Is(err, ErrSessionExpired))

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindSessionExpired, apiErr.Kind)
	assert.Equal(t, MsgSessionExpired, apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, apiErr.IsAuth())
}

func TestRequest_CredentialRejectionLeavesSessionAlone(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "messages.error",
			body:    `{"status":401,"error":401,"messages":{"error":"Invalid email or password"}}`,
			message: "Invalid email or password",
		},
		{
			name:    "top-level message",
			body:    `{"message":"Invalid credentials supplied"}`,
			message: "Invalid credentials supplied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &fakeCredentials{token: signToken(t, time.Now().Add(time.Hour))}
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, tt.body)
			}, creds)

			_, err := client.Post(context.Background(), "/auth/login", map[string]string{"emailAddress": "a@b.co"}, WithoutAuth())
			require.Error(t, err)

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindCredentialsRejected, apiErr.Kind)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Zero(t, creds.clears)
			assert.NotEmpty(t, creds.token)
		})
	}
}

func TestRequest_ValidationErrorKeepsFieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		fields  map[string]string
	}{
		{
			name:    "fields only",
			body:    `{"status":400,"error":400,"messages":{"emailAddress":"already taken"}}`,
			message: MsgValidation,
			fields:  map[string]string{"emailAddress": "already taken"},
		},
		{
			name:    "fields and summary",
			body:    `{"status":400,"error":400,"messages":{"error":"Registration failed","phoneNumber":"invalid","storeName":"required"}}`,
			message: "Registration failed",
			fields:  map[string]string{"phoneNumber": "invalid", "storeName": "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, tt.body)
			}, nil)

			_, err := client.Post(context.Background(), "/vendor/register", map[string]string{}, WithoutAuth())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			apiErr, _ := AsError(err)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.fields, apiErr.FieldMessages())
			assert.JSONEq(t, tt.body, string(apiErr.Data))
		})
	}
}

func TestRequest_BadRequestWithoutFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"status":400,"error":400,"messages":{"error":"Invalid page"}}`)
	}, nil)

	_, err := client.Get(context.Background(), "/products")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.Equal(t, "Invalid page", apiErr.Message)
	assert.Empty(t, apiErr.FieldMessages())
}

func TestRequest_StatusMapping(t *testing.T) {
	tests := []struct {
		status   int
		kind     Kind
		message  string
		sentinel error
		notified bool
	}{
		{http.StatusForbidden, KindForbidden, MsgForbidden, ErrForbidden, false},
		{http.StatusNotFound, KindNotFound, MsgNotFound, ErrNotFound, false},
		{http.StatusInternalServerError, KindServer, MsgServer, ErrServer, true},
		{http.StatusBadGateway, KindUnknown, MsgRequestFailed, ErrUnknown, false},
		{http.StatusConflict, KindUnknown, MsgRequestFailed, ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			notifier := &recordingNotifier{}
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, `{"status":0,"error":1,"messages":{"error":"server says no"}}`)
			}, nil, WithNotifier(notifier))

			_, err := client.Delete(context.Background(), "/products/p-1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.Status)

			if tt.notified {
				require.Len(t, notifier.notifications, 1)
				assert.Equal(t, KindServer, notifier.notifications[0].Kind)
				assert.Equal(t, MsgServer, notifier.notifications[0].Message)
			} else {
				assert.Empty(t, notifier.notifications)
			}
		})
	}
}

func TestRequest_NetworkFailureNotifies(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	notifier := &recordingNotifier{}
	client, err := New(baseURL, nil, WithNotifier(notifier), WithTimeout(2*time.Second))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/orders")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))

	apiErr, _ := AsError(err)
	assert.Equal(t, MsgNetwork, apiErr.Message)
	assert.Zero(t, apiErr.Status)
	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, KindNetwork, notifier.notifications[0].Kind)
}

func TestRequest_CancelledContextIsNotANetworkError(t *testing.T) {
	notifier := &recordingNotifier{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	}, nil, WithNotifier(notifier))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/orders")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.Empty(t, notifier.notifications)
}

func TestRequest_FormDataUsesEncoderContentType(t *testing.T) {
	var contentType string
	var fields map[string][]string
	var filenames []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, `{}`)
			return
		}
		fields = r.MultipartForm.Value
		for _, fh := range r.MultipartForm.File["productImage"] {
			filenames = append(filenames, fh.Filename)
		}
		writeJSON(w, http.StatusCreated, `{"status":201,"error":false,"message":"uploaded"}`)
	}, nil)

	form := NewFormData().
		Add("caption", "front").
		AddFile("productImage", "a.png", []byte("\x89PNG\r\n\x1a\nAAAA")).
		AddFile("productImage", "b.png", []byte("\x89PNG\r\n\x1a\nBBBB"))

	env, err := client.Post(context.Background(), "/products/p-1/images", form,
		AsFormData(), WithHeader("Content-Type", "application/json"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, env.Status)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="), contentType)
	assert.Equal(t, []string{"front"}, fields["caption"])
	assert.Equal(t, []string{"a.png", "b.png"}, filenames)
}

func TestRequest_FormDataFlagRequiresFormBody(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, nil)

	_, err := client.Post(context.Background(), "/vendor/register", map[string]string{"a": "b"}, AsFormData())
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.False(t, called)
}

func TestRequest_JSONBody(t *testing.T) {
	var contentType, query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		query = r.URL.Query().Get("page")
		writeJSON(w, http.StatusOK, `{"status":200,"error":false,"message":"ok"}`)
	}, nil)

	_, err := client.Put(context.Background(), "storefront", map[string]string{"storeName": "Ada"}, WithQuery("page", "2"))
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "2", query)
}

func TestRequest_UnsupportedMethod(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, nil)

	_, err := client.Request(context.Background(), http.MethodOptions, "/products", nil)
	assert.True(t, errors.Is(err, ErrUnknown))
	assert.False(t, called)
}

func TestRequest_MalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>`)
	}, nil)

	_, err := client.Get(context.Background(), "/products")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.Equal(t, MsgRequestFailed, apiErr.Message)
}

func TestRequest_EmptySuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	env, err := client.Delete(context.Background(), "/products/p-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, env.Status)

	_, err = DecodeData[map[string]any](env)
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestNew_TimeoutAppliesToCopyOfHTTPClient(t *testing.T) {
	transport := &http.Transport{}
	base := &http.Client{Transport: transport}

	for name, opts := range map[string][]Option{
		"timeout first": {WithTimeout(2 * time.Second), WithHTTPClient(base)},
		"timeout last":  {WithHTTPClient(base), WithTimeout(2 * time.Second)},
	} {
		t.Run(name, func(t *testing.T) {
			client, err := New("http://localhost/v1", nil, opts...)
			require.NoError(t, err)

			assert.Equal(t, 2*time.Second, client.http.Timeout)
			assert.Same(t, transport, client.http.Transport)
			assert.NotSame(t, base, client.http)
			assert.Zero(t, base.Timeout)
		})
	}

	defaultTimeout := http.DefaultClient.Timeout
	client, err := New("http://localhost/v1", nil, WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, time.Second, client.http.Timeout)
	assert.Equal(t, defaultTimeout, http.DefaultClient.Timeout)
}

func TestRequest_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			writeJSON(w, http.StatusNotFound, `{"status":404,"error":true,"message":"no such product"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"status":200,"error":false,"message":"ok"}`)
	}, &fakeCredentials{token: signToken(t, time.Now().Add(time.Hour))}, WithMeterProvider(provider))

	ctx := context.Background()
	_, err := client.Get(ctx, "/products")
	require.NoError(t, err)
	_, err = client.Delete(ctx, "/products/missing")
	require.ErrorIs(t, err, ErrNotFound)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	type point struct {
		method string
		status int64
		count  uint64
	}
	requests := map[string]point{}
	durations := map[string]uint64{}

	attr := func(set attribute.Set, key string) attribute.Value {
		v, ok := set.Value(attribute.Key(key))
		require.True(t, ok, "missing attribute %s", key)
		return v
	}

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				require.Equal(t, "apiclient.requests", m.Name)
				for _, dp := range data.DataPoints {
					requests[attr(dp.Attributes, "kind").AsString()] = point{
						method: attr(dp.Attributes, "method").AsString(),
						status: attr(dp.Attributes, "status").AsInt64(),
						count:  uint64(dp.Value),
					}
				}
			case metricdata.Histogram[float64]:
				require.Equal(t, "apiclient.request.duration", m.Name)
				for _, dp := range data.DataPoints {
					durations[attr(dp.Attributes, "kind").AsString()] = dp.Count
				}
			}
		}
	}

	assert.Equal(t, map[string]point{
		"ok":        {method: http.MethodGet, status: http.StatusOK, count: 1},
		"not_found": {method: http.MethodDelete, status: http.StatusNotFound, count: 1},
	}, requests)
	assert.Equal(t, map[string]uint64{"ok": 1, "not_found": 1}, durations)
}
