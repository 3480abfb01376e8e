package model

// SiteInfo annotates a recognized historical observation site.
type SiteInfo struct {
	Name       string   `json:"name"`        // canonical historical name
	ModernName string   `json:"modern_name"` // present-day city
	Dynasties  []string `json:"dynasties"`   // dynasties that used the site as a capital
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
}

// ObservationCenter counts records per unique location.
// Site is nil when the location is not a known historical capital.
type ObservationCenter struct {
	Location string    `json:"location"`
	Count    int       `json:"count"`
	Site     *SiteInfo `json:"site,omitempty"`
}

// RegionalDensity is the aggregate score for one region.
type RegionalDensity struct {
	Region  string  `json:"region"`
	Count   int     `json:"count"`   // raw record count
	Density float64 `json:"density"` // normalized score
}

// DynastyCount counts records per dynasty.
type DynastyCount struct {
	Dynasty string `json:"dynasty"`
	Count   int    `json:"count"`
}

// TypeCount counts records per category.
type TypeCount struct {
	Type  RecordType `json:"type"`
	Count int        `json:"count"`
}

// Centroid is the count-weighted mean position of records at recognized sites.
type Centroid struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight int     `json:"weight"` // contributing records
}

// Distribution is the full aggregate view produced by one analysis.
type Distribution struct {
	ObservationCenters []ObservationCenter `json:"observation_centers"`
	RegionalDensity    []RegionalDensity   `json:"regional_density"`
	Dynasties          []DynastyCount      `json:"dynasties"`
	Types              []TypeCount         `json:"types"`
	Centroid           *Centroid           `json:"centroid,omitempty"`
	Total              int                 `json:"total"`
	Unrecognized       int                 `json:"unrecognized"` // records whose location has no site metadata
}
