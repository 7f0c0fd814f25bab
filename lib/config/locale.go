package config

import (
	"errors"
	"os"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"golang.org/x/text/language"
)

// FallbackLocale is used when the host exposes no usable locale.
const FallbackLocale = "en_US"

// ErrInvalidLocale is returned for LOCALE values that are not a language tag.
var ErrInvalidLocale = errors.New("invalid locale")

var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// DefaultLocale returns the host locale in the underscore form Java uses
// (en_US), read from LC_ALL, LC_MESSAGES and LANG in that order.
func DefaultLocale() string {
	for _, key := range localeEnv {
		raw := os.Getenv(key)
		loc := normalizeLocale(raw)
		if loc == "" {
			continue
		}
		if _, err := parseLocale(loc); err != nil {
			log.WithFields(logger.Fields{
				"at":     "DefaultLocale",
				"env":    key,
				"value":  raw,
				"reason": err.Error(),
			}).Debug("ignoring unusable locale")
			continue
		}
		return loc
	}
	return FallbackLocale
}

// normalizeLocale strips the encoding and modifier of a POSIX locale
// (de_DE.UTF-8@euro becomes de_DE). C and POSIX yield "".
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return s
}

func parseLocale(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return language.Und, oops.Wrapf(ErrInvalidLocale, "empty locale")
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, oops.Wrapf(ErrInvalidLocale, "%q: %v", s, err)
	}
	return tag, nil
}
