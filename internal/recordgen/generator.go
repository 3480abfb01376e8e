// Package recordgen produces synthetic celestial record datasets for
// development and property tests.
package recordgen

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/tianwen/internal/domain/model"
	"github.com/okian/tianwen/pkg/logger"
)

// defaultCount is used when Config.Count is not positive.
const defaultCount = 100

// Probabilities (per mille) for sparse fields.
const (
	blankDynastyPerMille  = 50
	blankRegionPerMille   = 30
	blankLocationPerMille = 20
	perMille              = 1000
)

// site pairs a location with its region and candidate dynasties.
type site struct {
	location  string
	region    string
	dynasties []string
	weight    int
}

// sites drive the generated distribution. Heavier weights model the
// capitals that dominate the historical record.
var sites = []site{
	{"长安", "关中", []string{"西汉", "隋", "唐"}, 20},
	{"咸阳", "关中", []string{"秦"}, 3},
	{"洛阳", "中原", []string{"东周", "东汉", "北魏"}, 14},
	{"开封", "中原", []string{"北宋"}, 12},
	{"殷", "中原", []string{"商"}, 4},
	{"登封", "中原", []string{"元"}, 2},
	{"南京", "江南", []string{"东晋", "南梁", "明"}, 9},
	{"临安", "江南", []string{"南宋"}, 7},
	{"北京", "燕赵", []string{"元", "明", "清"}, 15},
	{"邯郸", "燕赵", []string{"赵"}, 2},
	{"曲阜", "齐鲁", []string{"鲁"}, 6},
	{"临淄", "齐鲁", []string{"齐"}, 2},
	{"敦煌", "河西", []string{"唐"}, 2},
	{"泉州", "闽南", []string{"南宋"}, 2},
}

// typeWeights skews categories toward eclipses and comets.
var typeWeights = []struct {
	t      model.RecordType
	weight int
}{
	{model.TypeEclipse, 30},
	{model.TypeComet, 20},
	{model.TypeMeteor, 20},
	{model.TypeNova, 5},
	{model.TypeStar, 10},
	{model.TypePlanet, 15},
}

// Config controls generation.
type Config struct {
	Count int   // number of records; values below 1 select 100
	Seed  int64 // same seed, same dataset; zero is a seed like any other
	// Sparse leaves some dynasty, region and location fields blank.
	Sparse bool
}

// namespace scopes generated record IDs.
var namespace = uuid.MustParse("6f1c3a52-2f0e-4d8e-9a57-1d1c2b3e4f50")

// Generate returns cfg.Count records. Output is fully determined by cfg.
func Generate(ctx context.Context, cfg Config) []model.CelestialRecord {
	if cfg.Count <= 0 {
		cfg.Count = defaultCount
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic datasets

	records := make([]model.CelestialRecord, cfg.Count)
	for i := range records {
		records[i] = generateSingleRecord(rng, cfg, i)
	}

	if l := logger.Safe(); l != nil {
		l.Debug(ctx, "generated records", logger.Int("count", len(records)), logger.Int64("seed", cfg.Seed))
	}
	return records
}

// generateSingleRecord creates the record at index.
func generateSingleRecord(rng *rand.Rand, cfg Config, index int) model.CelestialRecord {
	s := pickSite(rng)
	rec := model.CelestialRecord{
		ID:       uuid.NewSHA1(namespace, []byte(strconv.FormatInt(cfg.Seed, 10)+"/"+strconv.Itoa(index))).String(),
		Type:     pickType(rng),
		Date:     generateDate(rng),
		Dynasty:  s.dynasties[rng.Intn(len(s.dynasties))],
		Location: s.location,
		Region:   s.region,
	}
	if cfg.Sparse {
		if rng.Intn(perMille) < blankDynastyPerMille {
			rec.Dynasty = ""
		}
		if rng.Intn(perMille) < blankRegionPerMille {
			rec.Region = ""
		}
		if rng.Intn(perMille) < blankLocationPerMille {
			rec.Location = ""
		}
	}
	return rec
}

func pickSite(rng *rand.Rand) site {
	total := 0
	for _, s := range sites {
		total += s.weight
	}
	n := rng.Intn(total)
	for _, s := range sites {
		if n < s.weight {
			return s
		}
		n -= s.weight
	}
	return sites[len(sites)-1]
}

func pickType(rng *rand.Rand) model.RecordType {
	total := 0
	for _, tw := range typeWeights {
		total += tw.weight
	}
	n := rng.Intn(total)
	for _, tw := range typeWeights {
		if n < tw.weight {
			return tw.t
		}
		n -= tw.weight
	}
	return model.TypeEclipse
}

// generateDate returns a year between 720 BCE and 1900 CE in the
// "前N年" / "N年" style used by the historical tables.
func generateDate(rng *rand.Rand) string {
	year := rng.Intn(2620) - 720
	if year < 0 {
		return "前" + strconv.Itoa(-year) + "年"
	}
	if year == 0 {
		year = 1
	}
	return strconv.Itoa(year) + "年"
}
