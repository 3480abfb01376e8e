// Package model contains domain models passed between layers.
package model

import "strings"

// Unknown is the bucket used for absent location, region, dynasty or type values.
const Unknown = "unknown"

// RecordType is the category of a celestial observation.
type RecordType string

// Known record categories.
const (
	TypeEclipse RecordType = "eclipse"
	TypeComet   RecordType = "comet"
	TypeMeteor  RecordType = "meteor"
	TypeNova    RecordType = "nova"
	TypeStar    RecordType = "star"
	TypePlanet  RecordType = "planet"
)

// RecordTypes lists the known categories in display order.
var RecordTypes = []RecordType{TypeEclipse, TypeComet, TypeMeteor, TypeNova, TypeStar, TypePlanet}

// Known reports whether t is one of the recognized categories.
func (t RecordType) Known() bool {
	for _, k := range RecordTypes {
		if t == k {
			return true
		}
	}
	return false
}

// CelestialRecord is one historical observation entry.
type CelestialRecord struct {
	ID          string     `json:"id" yaml:"id"`                                       // unique identifier
	Type        RecordType `json:"type" yaml:"type"`                                   // eclipse, comet, meteor, ...
	Date        string     `json:"date" yaml:"date"`                                   // free-form historical date, e.g. "前613年"
	Dynasty     string     `json:"dynasty" yaml:"dynasty"`                             // temporal attribution
	Location    string     `json:"location" yaml:"location"`                           // observation site, e.g. "长安"
	Region      string     `json:"region" yaml:"region"`                               // coarser grouping than Location
	Description string     `json:"description,omitempty" yaml:"description,omitempty"` // free text
}

// LocationKey returns the grouping key for the record's location.
func (r CelestialRecord) LocationKey() string { return KeyOrUnknown(r.Location) }

// RegionKey returns the grouping key for the record's region.
func (r CelestialRecord) RegionKey() string { return KeyOrUnknown(r.Region) }

// DynastyKey returns the grouping key for the record's dynasty.
func (r CelestialRecord) DynastyKey() string { return KeyOrUnknown(r.Dynasty) }

// TypeKey returns the grouping key for the record's type.
func (r CelestialRecord) TypeKey() RecordType {
	return RecordType(KeyOrUnknown(string(r.Type)))
}

// KeyOrUnknown trims s and substitutes Unknown for blank values.
func KeyOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return s
}
