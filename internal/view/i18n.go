package view

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported report locales. The first entry is the fallback.
var supportedLocales = []language.Tag{language.English, language.SimplifiedChinese}

var localeMatcher = language.NewMatcher(supportedLocales)

// DefaultLocale is the report language used when none is configured.
var DefaultLocale = language.SimplifiedChinese

//go:embed locales/*.yaml
var localeFS embed.FS

var messages = mustLoadCatalog()

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

func mustLoadCatalog() *catalog.Builder {
	b, err := loadCatalog(localeFS)
	if err != nil {
		panic(err)
	}
	return b
}

// loadCatalog reads every locales/*.yaml file into a message catalog.
func loadCatalog(fsys fs.FS) (*catalog.Builder, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	b := catalog.NewBuilder(catalog.Fallback(supportedLocales[0]))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("%s: locale %q: %w", path, file.Locale, err)
		}
		for key, msg := range file.Messages {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("%s: key %q: %w", path, key, err)
			}
		}
	}
	return b, nil
}

// ResolveLocale maps tag to the closest supported report locale.
func ResolveLocale(tag language.Tag) language.Tag {
	_, idx, _ := localeMatcher.Match(tag)
	return supportedLocales[idx]
}

// ParseLocale parses a BCP 47 tag and resolves it to a supported locale.
// A blank tag selects DefaultLocale.
func ParseLocale(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrUnsupportedLocale, s, err)
	}
	return ResolveLocale(tag), nil
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}
