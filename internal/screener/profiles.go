package screener

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Profile names used by the service.
const (
	ProfileScan        = "scan"
	ProfileFundamental = "fundamental"
	ProfileBasic       = "basic"
	ProfileTicker      = "profile"
)

// Profile is the configuration data of one endpoint: which markets the
// query is scoped to and which fields it requests.
type Profile struct {
	Name    string   `yaml:"-"`
	Markets []string `yaml:"markets"`
	Fields  []string `yaml:"fields"`
}

// Profiles indexes profiles by name.
type Profiles map[string]Profile

// Get returns the named profile or an error naming it.
func (p Profiles) Get(name string) (Profile, error) {
	prof, ok := p[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown query profile %q", name)
	}
	return prof, nil
}

// ScanMarkets is the universe of the scan endpoints.
var ScanMarkets = []string{
	"america", "australia", "belgium", "brazil", "canada",
	"chile", "china", "italy", "czech", "denmark", "egypt",
	"estonia", "finland", "france", "germany", "greece",
	"hongkong", "hungary", "india", "indonesia", "ireland",
	"israel", "japan", "korea", "kuwait", "lithuania",
	"luxembourg", "malaysia", "mexico", "morocco",
	"netherlands", "newzealand", "norway", "peru",
	"philippines", "poland", "portugal", "qatar", "russia",
	"singapore", "slovakia", "spain", "sweden", "switzerland",
	"taiwan", "uae", "uk", "venezuela", "vietnam",
}

// ScanFields are the columns returned for every scan row.
var ScanFields = []string{
	"name", "description", "country", "sector", "currency",
	"close", "change", "volume", "market_cap_basic",
	"RSI", "MACD.macd", "MACD.signal",
	"SMA50", "SMA200", "Volatility.D", "Recommend.All",
	"float_shares_percent_current", "relative_volume_10d_calc",
	"price_earnings_ttm", "earnings_per_share_basic_ttm",
	"Perf.W", "Perf.1M",
}

// FundamentalMarkets scopes the full single-ticker lookup.
var FundamentalMarkets = []string{
	"america", "australia", "belgium", "brazil", "canada",
	"italy", "france", "germany", "uk", "spain", "netherlands",
}

// FundamentalFields are the extended fundamental and technical columns.
var FundamentalFields = []string{
	"name", "description", "close", "market_cap_basic",
	"volume", "RSI", "MACD.macd", "MACD.signal",
	"SMA50", "SMA200", "Volatility.D", "Recommend.All",
	"price_earnings_ttm", "earnings_per_share_basic_ttm",
	"return_on_equity", "debt_to_equity", "current_ratio",
	"price_book_ratio", "dividend_yield_recent",
}

// BasicMarkets scopes the compact lookup behind analyze-fundamental.
var BasicMarkets = []string{
	"america", "australia", "brazil", "canada", "china", "france",
	"germany", "india", "italy", "japan", "uk",
}

// BasicFields is the five-column compact lookup.
var BasicFields = []string{
	"name", "close", "market_cap_basic", "price_earnings_ttm", "earnings_per_share_basic_ttm",
}

// TickerFields feed the descriptive half of /api/ticker/info.
var TickerFields = []string{
	"name", "description", "close", "currency", "sector",
}

// DefaultProfiles returns fresh copies of the built-in tables.
func DefaultProfiles() Profiles {
	return Profiles{
		ProfileScan:        {Name: ProfileScan, Markets: slices.Clone(ScanMarkets), Fields: slices.Clone(ScanFields)},
		ProfileFundamental: {Name: ProfileFundamental, Markets: slices.Clone(FundamentalMarkets), Fields: slices.Clone(FundamentalFields)},
		ProfileBasic:       {Name: ProfileBasic, Markets: slices.Clone(BasicMarkets), Fields: slices.Clone(BasicFields)},
		ProfileTicker:      {Name: ProfileTicker, Markets: slices.Clone(FundamentalMarkets), Fields: slices.Clone(TickerFields)},
	}
}

// profilesFile is the YAML shape accepted by LoadProfiles:
//
//	profiles:
//	  scan:
//	    markets: [america, italy]
//	    fields: [name, close, market_cap_basic]
type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfiles overlays the YAML file at path onto base. Only non-empty
// lists replace the built-in ones; unknown profile names are rejected.
func LoadProfiles(path string, base Profiles) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	return parseProfiles(data, base)
}

func parseProfiles(data []byte, base Profiles) (Profiles, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	out := make(Profiles, len(base))
	for name, p := range base {
		out[name] = p
	}
	for name, override := range file.Profiles {
		cur, ok := out[name]
		if !ok {
			return nil, fmt.Errorf("parse profiles: unknown profile %q", name)
		}
		if len(override.Markets) > 0 {
			cur.Markets = slices.Clone(override.Markets)
		}
		if len(override.Fields) > 0 {
			cur.Fields = slices.Clone(override.Fields)
		}
		out[name] = cur
	}
	return out, nil
}
