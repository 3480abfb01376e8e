// Package analyzer aggregates celestial records into spatial and temporal
// distributions for display.
package analyzer

import (
	"fmt"

	"github.com/okian/tianwen/internal/domain/gazetteer"
	"github.com/okian/tianwen/internal/domain/model"
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithNormalizer sets the regional density formula.
func WithNormalizer(n Normalizer) Option {
	return func(a *Analyzer) {
		if n != nil {
			a.normalizer = n
		}
	}
}

// WithGazetteer sets the site table used to annotate observation centers.
func WithGazetteer(g *gazetteer.Gazetteer) Option {
	return func(a *Analyzer) {
		if g != nil {
			a.gazetteer = g
		}
	}
}

// Analyzer computes Distributions. It holds no per-call state; each call is
// a pure function of its input.
type Analyzer struct {
	normalizer Normalizer
	gazetteer  *gazetteer.Gazetteer
}

// New creates an Analyzer counting raw records per region and annotating
// locations with the built-in capitals.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		normalizer: CountNormalizer{},
		gazetteer:  gazetteer.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSpatialDistribution analyzes records with a default Analyzer.
func AnalyzeSpatialDistribution(records []model.CelestialRecord) (model.Distribution, error) {
	return New().AnalyzeSpatialDistribution(records)
}

// AnalyzeSpatialDistribution groups records by location, region, dynasty and
// type. Collections are emitted in first-seen order; ranking is left to the
// display layer. A nil slice is rejected as invalid input, an empty one
// yields an empty Distribution.
func (a *Analyzer) AnalyzeSpatialDistribution(records []model.CelestialRecord) (model.Distribution, error) {
	if records == nil {
		return model.Distribution{}, NewInvalidInput("records must be a sequence, got nil")
	}

	locations := newCounter()
	regions := newCounter()
	dynasties := newCounter()
	kinds := newCounter()
	for _, rec := range records {
		locations.add(rec.LocationKey())
		regions.add(rec.RegionKey())
		dynasties.add(rec.DynastyKey())
		kinds.add(string(rec.TypeKey()))
	}

	dist := model.Distribution{
		ObservationCenters: make([]model.ObservationCenter, 0, len(locations.keys)),
		RegionalDensity:    make([]model.RegionalDensity, 0, len(regions.keys)),
		Dynasties:          make([]model.DynastyCount, 0, len(dynasties.keys)),
		Types:              make([]model.TypeCount, 0, len(kinds.keys)),
		Total:              len(records),
	}

	var latSum, lonSum float64
	var weight int
	for _, loc := range locations.keys {
		count := locations.counts[loc]
		center := model.ObservationCenter{Location: loc, Count: count}
		if site, ok := a.gazetteer.Lookup(loc); ok && loc != model.Unknown {
			center.Site = &site
			latSum += site.Lat * float64(count)
			lonSum += site.Lon * float64(count)
			weight += count
		} else {
			dist.Unrecognized += count
		}
		dist.ObservationCenters = append(dist.ObservationCenters, center)
	}
	if weight > 0 {
		dist.Centroid = &model.Centroid{
			Lat:    latSum / float64(weight),
			Lon:    lonSum / float64(weight),
			Weight: weight,
		}
	}

	normalizer := a.normalizer
	if s, ok := normalizer.(Session); ok {
		run, err := s.Begin()
		if err != nil {
			return model.Distribution{}, fmt.Errorf("begin density normalizer: %w", err)
		}
		normalizer = run
	}

	peak := regions.peak()
	for _, region := range regions.keys {
		count := regions.counts[region]
		density, err := normalizer.Normalize(region, count, len(records), peak)
		if err != nil {
			return model.Distribution{}, fmt.Errorf("normalize region %q: %w", region, err)
		}
		dist.RegionalDensity = append(dist.RegionalDensity, model.RegionalDensity{
			Region:  region,
			Count:   count,
			Density: density,
		})
	}

	for _, d := range dynasties.keys {
		dist.Dynasties = append(dist.Dynasties, model.DynastyCount{Dynasty: d, Count: dynasties.counts[d]})
	}
	for _, k := range kinds.keys {
		dist.Types = append(dist.Types, model.TypeCount{Type: model.RecordType(k), Count: kinds.counts[k]})
	}

	return dist, nil
}

// counter tallies keys while remembering first-seen order.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *counter) peak() int {
	best := 0
	for _, n := range c.counts {
		if n > best {
			best = n
		}
	}
	return best
}
