package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu            sync.RWMutex
	bundle        *i18n.Bundle
	matcher       language.Matcher
	supported     []string
	defaultLocale = "en"
)

type ctxKey struct{}

// Init loads all locale files and sets the default locale
func Init(defLocale string) error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("i18n: read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			return fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
	}

	tags := b.LanguageTags()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	matcher = language.NewMatcher(tags)
	supported = names
	if defLocale != "" {
		defaultLocale = matchWith(matcher, names, defLocale, names[0])
	}
	return nil
}

// MatchLocale picks the best loaded locale for an Accept-Language value,
// falling back to the default locale
func MatchLocale(acceptLanguage string) string {
	mu.RLock()
	defer mu.RUnlock()
	if matcher == nil || acceptLanguage == "" {
		return defaultLocale
	}
	return matchWith(matcher, supported, acceptLanguage, defaultLocale)
}

func matchWith(m language.Matcher, names []string, acceptLanguage, fallback string) string {
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return fallback
	}
	_, index, confidence := m.Match(desired...)
	if confidence == language.No {
		return fallback
	}
	return names[index]
}

// DefaultLocale returns the configured default locale
func DefaultLocale() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLocale
}

// WithLocale returns a new context carrying the given locale
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale from the context.
// Returns the configured default locale if not set.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLocale()
}

// T translates a message ID using the locale from the context
func T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	return Translate(LocaleFromContext(ctx), messageID, templateData...)
}

// Translate translates a message ID for an explicit locale. Unknown ids
// are returned unchanged.
func Translate(locale, messageID string, templateData ...map[string]any) string {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b == nil {
		return messageID
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := i18n.NewLocalizer(b, locale).Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}
