package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLocale(t *testing.T) {
	tests := []struct {
		name                    string
		lcAll, lcMessages, lang string
		want                    string
	}{
		{"LANG only", "", "", "de_DE.UTF-8", "de_DE"},
		{"LC_ALL wins", "fr_FR.UTF-8", "it_IT", "de_DE", "fr_FR"},
		{"LC_MESSAGES before LANG", "", "ja_JP.eucJP", "de_DE", "ja_JP"},
		{"modifier stripped", "", "", "ca_ES@valencia", "ca_ES"},
		{"C skipped", "C", "", "pt_BR.UTF-8", "pt_BR"},
		{"POSIX falls back", "", "", "POSIX", FallbackLocale},
		{"nothing set", "", "", "", FallbackLocale},
		{"garbage skipped", "", "", "not a locale", FallbackLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_MESSAGES", tt.lcMessages)
			t.Setenv("LANG", tt.lang)
			assert.Equal(t, tt.want, DefaultLocale())
		})
	}
}

func TestParseLocale(t *testing.T) {
	tag, err := parseLocale("en_GB")
	assert.NoError(t, err)
	assert.Equal(t, "en-GB", tag.String())

	tag, err = parseLocale("zh-Hant-TW")
	assert.NoError(t, err)
	assert.Equal(t, "zh-Hant-TW", tag.String())

	for _, bad := range []string{"", "   ", "??", "en US"} {
		_, err := parseLocale(bad)
		assert.ErrorIs(t, err, ErrInvalidLocale, bad)
	}
}
