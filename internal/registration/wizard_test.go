package registration

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []domain.Category{
	{ID: 1, Name: "General"},
	{ID: 3, Name: "Food & Drinks"},
	{ID: 4, Name: "Fashion"},
}

func fillAccount(w *Wizard) {
	d := validData()
	w.Data.EmailAddress = d.EmailAddress
	w.Data.Password = d.Password
	w.ConfirmPassword = d.Password
}

func fillProfile(w *Wizard) {
	d := validData()
	w.Data.FullName = d.FullName
	w.Data.BusinessName = d.BusinessName
	w.Data.PhoneNumber = d.PhoneNumber
	w.SelectCategory(testCategories, "food & drinks")
}

func fillBusinessDetails(w *Wizard) {
	d := validData()
	w.Data.StoreName = d.StoreName
	w.Data.BusinessAddress = d.BusinessAddress
	w.Data.IDDocument = d.IDDocument
	w.Data.BusinessRegCertificate = d.BusinessRegCertificate
}

func TestWizard_HappyPath(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, http.StatusCreated, `{"status":201,"error":false,"message":"ok"}`)
	w := NewWizard(pipeline)
	assert.Equal(t, StepAccount, w.Step())

	fillAccount(w)
	require.NoError(t, w.Next())
	assert.Equal(t, StepProfile, w.Step())

	fillProfile(w)
	require.NoError(t, w.Next())
	assert.Equal(t, StepBusinessDetails, w.Step())
	assert.Equal(t, 3, w.Data.BusinessCategory)

	fillBusinessDetails(w)
	env, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, StepSubmitted, w.Step())

	assert.ErrorIs(t, w.Back(), ErrCannotGoBack)
	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestWizard_InvalidStepBlocksTransition(t *testing.T) {
	w := NewWizard(nil)
	fillAccount(w)
	w.ConfirmPassword = "mismatch!"

	assert.ErrorIs(t, w.Next(), ErrStepInvalid)
	assert.Equal(t, StepAccount, w.Step())
	assert.Equal(t, MsgPasswordMismatch, w.Errors().Get(FieldConfirmPassword))

	w.ConfirmPassword = w.Data.Password
	require.NoError(t, w.Next())
	assert.Empty(t, w.Errors())

	fillProfile(w)
	w.Data.BusinessCategory = 0
	assert.ErrorIs(t, w.Next(), ErrStepInvalid)
	assert.Equal(t, MsgCategoryRequired, w.Errors().Get(FieldBusinessCategory))
}

func TestWizard_BackRetainsData(t *testing.T) {
	w := NewWizard(nil)
	assert.ErrorIs(t, w.Back(), ErrCannotGoBack)

	fillAccount(w)
	require.NoError(t, w.Next())
	fillProfile(w)
	require.NoError(t, w.Next())

	require.NoError(t, w.Back())
	assert.Equal(t, StepProfile, w.Step())
	require.NoError(t, w.Back())
	assert.Equal(t, StepAccount, w.Step())

	assert.Equal(t, "ada@example.com", w.Data.EmailAddress)
	assert.Equal(t, "Ada Foods", w.Data.BusinessName)

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, StepBusinessDetails, w.Step())
}

func TestWizard_SubmitOnlyFromBusinessDetails(t *testing.T) {
	w := NewWizard(nil)
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotReadyToSubmit)
}

func TestWizard_SubmitFailureStaysWithFieldErrors(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t, http.StatusBadRequest,
		`{"status":400,"error":400,"messages":{"emailAddress":"already taken"}}`)
	w := NewWizard(pipeline)

	fillAccount(w)
	require.NoError(t, w.Next())
	fillProfile(w)
	require.NoError(t, w.Next())

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrStepInvalid)

	fillBusinessDetails(w)
	_, err = w.Submit(context.Background())

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, StepBusinessDetails, w.Step())
	assert.Equal(t, "already taken", w.Errors().Get(FieldEmailAddress))
}

func TestResolveCategory(t *testing.T) {
	id, ok := ResolveCategory(testCategories, "FASHION")
	assert.True(t, ok)
	assert.Equal(t, 4, id)

	id, ok = ResolveCategory(testCategories, "3")
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	_, ok = ResolveCategory(testCategories, "Electronics")
	assert.False(t, ok)

	_, ok = ResolveCategory(testCategories, " ")
	assert.False(t, ok)
}
