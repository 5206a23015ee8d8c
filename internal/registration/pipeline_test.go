package registration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	authorization string
	contentType   string
	values        map[string][]string
	files         map[string][]string
}

func newTestPipeline(t *testing.T, status int, body string) (*Pipeline, *session.Session, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.authorization = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			captured.values = r.MultipartForm.Value
			captured.files = map[string][]string{}
			for name, headers := range r.MultipartForm.File {
				for _, fh := range headers {
					captured.files[name] = append(captured.files[name], fh.Filename)
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStore(), nil)
	client, err := apiclient.New(srv.URL, sess)
	require.NoError(t, err)

	return NewPipeline(client, sess, nil), sess, captured
}

func TestPipeline_SubmitSuccess(t *testing.T) {
	body := `{"status":201,"error":false,"message":"Registration successful",
		"data":{"token":"issued-token","user":{"id":"v-1","emailAddress":"ada@example.com"}}}`
	pipeline, sess, captured := newTestPipeline(t, http.StatusCreated, body)

	env, err := pipeline.Submit(context.Background(), validData())
	require.NoError(t, err)

	assert.Equal(t, "Registration successful", env.Message)
	assert.Empty(t, captured.authorization)
	assert.Contains(t, captured.contentType, "multipart/form-data; boundary=")
	assert.Equal(t, []string{"2348012345678"}, captured.values["phoneNumber"])
	assert.Equal(t, []string{"3"}, captured.values["businessCategory"])
	assert.Equal(t, []string{""}, captured.values["taxIdNumber"])
	assert.Equal(t, []string{"id.pdf"}, captured.files["idDocument"])
	assert.Equal(t, []string{"cac.pdf"}, captured.files["businessRegCertificate"])

	token, ok := sess.Token(context.Background())
	require.True(t, ok)
	assert.Equal(t, "issued-token", token)
}

func TestPipeline_FieldErrors(t *testing.T) {
	body := `{"status":400,"error":400,"messages":{"emailAddress":"already taken"}}`
	pipeline, _, _ := newTestPipeline(t, http.StatusBadRequest, body)

	_, err := pipeline.Submit(context.Background(), validData())

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, FieldErrors{FieldEmailAddress: "already taken"}, regErr.FieldErrors)
	assert.Equal(t, apiclient.MsgValidation, regErr.Message)
	assert.True(t, errors.Is(err, apiclient.ErrValidation))
}

func TestPipeline_FieldErrorsKeepExactServerKeys(t *testing.T) {
	body := `{"status":400,"error":400,"messages":{"error":"Please fix the highlighted fields",
		"phoneNumber":"invalid phone","storeName":"taken","somethingNew":"server-only rule"}}`
	pipeline, _, _ := newTestPipeline(t, http.StatusBadRequest, body)

	_, err := pipeline.Submit(context.Background(), validData())

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "Please fix the highlighted fields", regErr.Message)
	assert.Equal(t, FieldErrors{
		FieldPhoneNumber:      "invalid phone",
		FieldStoreName:        "taken",
		Field("somethingNew"): "server-only rule",
	}, regErr.FieldErrors)
}

func TestPipeline_OtherFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"server error", http.StatusInternalServerError, `{}`, apiclient.MsgServer},
		{"forbidden", http.StatusForbidden, `{}`, apiclient.MsgForbidden},
		{"bad request without fields", http.StatusBadRequest, `{"messages":{"error":"Registration closed"}}`, "Registration closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline, _, _ := newTestPipeline(t, tt.status, tt.body)

			_, err := pipeline.Submit(context.Background(), validData())

			var regErr *RegistrationError
			require.True(t, errors.As(err, &regErr))
			assert.Equal(t, tt.message, regErr.Message)
			assert.NotNil(t, regErr.FieldErrors)
			assert.Empty(t, regErr.FieldErrors)
		})
	}
}
