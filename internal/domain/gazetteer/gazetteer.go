// Package gazetteer resolves historical observation site names to capital metadata.
package gazetteer

import (
	"strings"
	"unicode"

	"github.com/okian/tianwen/internal/domain/model"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Site is a known historical capital and the names it was recorded under.
type Site struct {
	Info    model.SiteInfo
	Aliases []string
}

// Option applies a configuration option to the Gazetteer.
type Option func(*Gazetteer)

// WithSites registers additional sites. Later registrations win on alias clashes.
func WithSites(sites ...Site) Option {
	return func(g *Gazetteer) {
		for _, s := range sites {
			g.add(s)
		}
	}
}

// WithoutDefaults starts from an empty table instead of the built-in capitals.
func WithoutDefaults() Option {
	return func(g *Gazetteer) {
		g.sites = make(map[string]model.SiteInfo)
	}
}

// Gazetteer maps normalized site names to capital metadata. It is read-only
// after construction.
type Gazetteer struct {
	sites map[string]model.SiteInfo
}

// New creates a Gazetteer seeded with the built-in historical capitals.
func New(opts ...Option) *Gazetteer {
	g := &Gazetteer{sites: make(map[string]model.SiteInfo)}
	for _, s := range capitals {
		g.add(s)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gazetteer) add(s Site) {
	names := append([]string{s.Info.Name}, s.Aliases...)
	for _, n := range names {
		key := Normalize(n)
		if key == "" {
			continue
		}
		g.sites[key] = s.Info
	}
}

// Lookup returns the metadata for name. Names are matched after
// normalization; a trailing "城" is ignored when the bare name is known.
func (g *Gazetteer) Lookup(name string) (model.SiteInfo, bool) {
	key := Normalize(name)
	if key == "" {
		return model.SiteInfo{}, false
	}
	info, ok := g.sites[key]
	if !ok {
		if bare, found := strings.CutSuffix(key, "城"); found && bare != "" {
			info, ok = g.sites[bare]
		}
	}
	if !ok {
		return model.SiteInfo{}, false
	}
	info.Dynasties = append([]string(nil), info.Dynasties...)
	return info, true
}

// Len returns the number of distinct names (including aliases) known.
func (g *Gazetteer) Len() int {
	return len(g.sites)
}

// Normalize folds width variants, applies NFKC and drops all whitespace.
func Normalize(name string) string {
	name = norm.NFKC.String(width.Fold.String(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}
