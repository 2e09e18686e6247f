package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Bid must be higher than current price.", T("en", KeyBidTooLow))
	assert.Equal(t, "出價必須高於目前價格。", T("zh_TW", KeyBidTooLow))
	assert.Equal(t, "Invalid input", T("en", KeyValidationInvalid, "input"))

	// unknown languages fall back to the default
	assert.Equal(t, "Listing not found", T("fr", KeyListingNotFound))
	// unknown keys are returned as-is
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))

	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}

func TestLocalesDefineSameKeys(t *testing.T) {
	require.NoError(t, Initialize("en"))

	en := instance.translations["en"]
	zh := instance.translations["zh_TW"]
	require.NotEmpty(t, en)
	for key := range en {
		_, ok := zh[key]
		assert.True(t, ok, "zh_TW missing %s", key)
	}
}
