package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategoryID(t *testing.T) {
	assert.Equal(t, "1", CategoryID(0))
	assert.Equal(t, "1", CategoryID(-5))
	assert.Equal(t, "3", CategoryID(3))
}

func TestParseCategoryID(t *testing.T) {
	assert.Equal(t, 7, ParseCategoryID("7"))
	assert.Equal(t, 0, ParseCategoryID("fashion"))
	assert.Equal(t, "1", CategoryID(ParseCategoryID("2.5")))
}

func TestBuildPayload_RoundTrip(t *testing.T) {
	d := validData()
	d.BusinessRegNumber = "RC-1234"
	d.TaxIDNumber = "TIN-99"

	form := BuildPayload(d, nil)

	want := map[Field]string{
		FieldEmailAddress:      d.EmailAddress,
		FieldPassword:          d.Password,
		FieldFullName:          d.FullName,
		FieldBusinessName:      d.BusinessName,
		FieldBusinessCategory:  "3",
		FieldPhoneNumber:       "2348012345678",
		FieldBusinessRegNumber: "RC-1234",
		FieldStoreName:         d.StoreName,
		FieldBusinessAddress:   d.BusinessAddress,
		FieldTaxIDNumber:       "TIN-99",
	}
	for field, value := range want {
		got, ok := form.Value(string(field))
		require.True(t, ok, field)
		assert.Equal(t, value, got, field)
	}

	assert.Equal(t, []string{"id.pdf"}, form.Filenames(string(FieldIDDocument)))
	assert.Equal(t, []string{"cac.pdf"}, form.Filenames(string(FieldBusinessRegCertificate)))
	assert.Equal(t, len(want)+2, form.Len())
}

func TestBuildPayload_OptionalFieldsDefaultToEmpty(t *testing.T) {
	form := BuildPayload(validData(), nil)

	v, ok := form.Value(string(FieldTaxIDNumber))
	require.True(t, ok)
	assert.Empty(t, v)

	v, ok = form.Value(string(FieldBusinessRegNumber))
	require.True(t, ok)
	assert.Empty(t, v)
}

func TestBuildPayload_CategoryFallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	d := validData()
	d.BusinessCategory = -2
	form := BuildPayload(d, zap.New(core))

	v, _ := form.Value(string(FieldBusinessCategory))
	assert.Equal(t, "1", v)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(-2), logs.All()[0].ContextMap()["category"])
}
