package itemform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sortbase/internal/model"
)

func TestParseImages(t *testing.T) {
	got := ParseImages("https://a.example/1.png\n\n   https://a.example/2.png  \n")
	assert.Equal(t, []string{"https://a.example/1.png", "https://a.example/2.png"}, got)
	assert.Empty(t, ParseImages("  \n "))
}

func TestParseProperties(t *testing.T) {
	props, err := ParseProperties("Brand: Leica\nYear: 1954\n\nNote: a: b")
	require.NoError(t, err)
	require.Len(t, props, 3)

	assert.Equal(t, "Brand", props[0].Key)
	assert.Equal(t, "Leica", props[0].Value.String())

	year, ok := props[1].Value.Number()
	assert.True(t, ok)
	assert.Equal(t, 1954.0, year)

	assert.Equal(t, "a: b", props[2].Value.String())
}

func TestParsePropertiesErrors(t *testing.T) {
	_, err := ParseProperties("no colon here")
	assert.ErrorContains(t, err, "line 1")

	_, err = ParseProperties("a: 1\na: 2")
	assert.ErrorContains(t, err, "duplicate")
}

func TestFormatPropertiesRoundTrip(t *testing.T) {
	in := model.Properties{
		{Key: "Colour", Value: model.StringValue("red")},
		{Key: "Weight", Value: model.NumberValue(1.5)},
	}
	out, err := ParseProperties(FormatProperties(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateName("   "))
	assert.NoError(t, validateName("Camera"))

	assert.NoError(t, validateAmount(""))
	assert.NoError(t, validateAmount("12,5"))
	assert.Error(t, validateAmount("twelve"))

	assert.Error(t, validateProperties(": value"))
	assert.NoError(t, validateProperties("k: v"))
}
