// Package i18n loads the UI message catalogs and hands out per-request
// localizers.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// EmbeddedRoot is the directory holding the catalogs inside Embedded().
const EmbeddedRoot = "locales"

// Embedded returns the catalogs compiled into the binary.
func Embedded() afero.Fs {
	return afero.FromIOFS{FS: embeddedLocales}
}

// Localizer resolves message keys for one language.
type Localizer interface {
	T(key string, args ...any) string
}

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale. It is safe for concurrent use and can be
// reloaded in place.
type Bundle struct {
	fs       afero.Fs
	root     string
	fallback language.Tag

	mu      sync.RWMutex
	tags    []language.Tag
	matcher language.Matcher
	cat     catalog.Catalog
}

// Load reads every *.yaml catalog under root. fallback names the locale used
// when a request matches nothing and fills keys other locales leave out.
func Load(fsys afero.Fs, root, fallback string) (*Bundle, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("parse fallback locale %q: %w", fallback, err)
	}
	b := &Bundle{fs: fsys, root: root, fallback: tag}
	if err := b.Reload(); err != nil {
		return nil, err
	}
	return b, nil
}

// MustEmbedded loads the compiled-in catalogs and panics on failure.
func MustEmbedded(fallback string) *Bundle {
	b, err := Load(Embedded(), EmbeddedRoot, fallback)
	if err != nil {
		panic(err)
	}
	return b
}

// Reload re-reads the catalogs. On error the previous catalogs stay active.
func (b *Bundle) Reload() error {
	files, err := b.readFiles()
	if err != nil {
		return err
	}

	base, ok := files[b.fallback]
	if !ok {
		return fmt.Errorf("fallback locale %s is not defined in catalogs", b.fallback)
	}

	builder := catalog.NewBuilder(catalog.Fallback(b.fallback))
	tags := []language.Tag{b.fallback}
	for tag := range files {
		if tag != b.fallback {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags[1:], func(i, j int) bool { return tags[i+1].String() < tags[j+1].String() })

	for _, tag := range tags {
		msgs := files[tag]
		for key, fallbackMsg := range base {
			msg, ok := msgs[key]
			if !ok {
				msg = fallbackMsg
			}
			if err := builder.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("set %s/%s: %w", tag, key, err)
			}
		}
		for key, msg := range msgs {
			if _, ok := base[key]; ok {
				continue
			}
			if err := builder.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("set %s/%s: %w", tag, key, err)
			}
		}
	}

	b.mu.Lock()
	b.tags = tags
	b.matcher = language.NewMatcher(tags)
	b.cat = builder
	b.mu.Unlock()
	return nil
}

func (b *Bundle) readFiles() (map[language.Tag]map[string]string, error) {
	entries, err := afero.ReadDir(b.fs, b.root)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", b.root, err)
	}

	files := make(map[language.Tag]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isCatalog(entry.Name()) {
			continue
		}
		p := path.Join(b.root, entry.Name())
		data, err := afero.ReadFile(b.fs, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var parsed catalogFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		tag, err := language.Parse(strings.TrimSpace(parsed.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: locale %q: %w", p, parsed.Locale, err)
		}
		if _, dup := files[tag]; dup {
			return nil, fmt.Errorf("catalog %s: locale %s defined twice", p, tag)
		}
		if parsed.Messages == nil {
			parsed.Messages = map[string]string{}
		}
		files[tag] = parsed.Messages
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files found in %s: %w", b.root, fs.ErrNotExist)
	}
	return files, nil
}

func isCatalog(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Locales lists the loaded locales, fallback first.
func (b *Bundle) Locales() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]language.Tag(nil), b.tags...)
}

// Match picks the best loaded locale for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(wanted...)
	if conf == language.No {
		return b.fallback
	}
	return b.tags[idx]
}

// Localizer returns a Localizer for tag.
func (b *Bundle) Localizer(tag language.Tag) Localizer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return printer{p: message.NewPrinter(tag, message.Catalog(b.cat))}
}

type printer struct {
	p *message.Printer
}

func (p printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
