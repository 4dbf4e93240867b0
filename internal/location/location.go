// Package location is the country/state/city reference directory used by the
// cascading selectors. Lookups are pure and synchronous; each level is only
// meaningful when its parent is set.
package location

type Country struct {
	ISOCode string
	Name    string
}

type State struct {
	ISOCode string
	Name    string
}

type country struct {
	code   string
	name   string
	states []state
}

type state struct {
	code   string
	name   string
	cities []string
}

var directory = []country{
	{code: "US", name: "United States", states: []state{
		{code: "CA", name: "California", cities: []string{"Los Angeles", "San Diego", "San Francisco", "San Jose"}},
		{code: "NY", name: "New York", cities: []string{"Albany", "Buffalo", "New York City", "Rochester"}},
		{code: "TX", name: "Texas", cities: []string{"Austin", "Dallas", "Houston", "San Antonio"}},
		{code: "WA", name: "Washington", cities: []string{"Bellevue", "Seattle", "Spokane", "Tacoma"}},
	}},
	{code: "CA", name: "Canada", states: []state{
		{code: "BC", name: "British Columbia", cities: []string{"Vancouver", "Victoria"}},
		{code: "ON", name: "Ontario", cities: []string{"Ottawa", "Toronto", "Waterloo"}},
		{code: "QC", name: "Quebec", cities: []string{"Montreal", "Quebec City"}},
	}},
	{code: "GB", name: "United Kingdom", states: []state{
		{code: "ENG", name: "England", cities: []string{"Birmingham", "Cambridge", "London", "Manchester"}},
		{code: "SCT", name: "Scotland", cities: []string{"Edinburgh", "Glasgow"}},
		{code: "WLS", name: "Wales", cities: []string{"Cardiff", "Swansea"}},
	}},
	{code: "DE", name: "Germany", states: []state{
		{code: "BE", name: "Berlin", cities: []string{"Berlin"}},
		{code: "BY", name: "Bavaria", cities: []string{"Munich", "Nuremberg"}},
		{code: "HH", name: "Hamburg", cities: []string{"Hamburg"}},
	}},
	{code: "IN", name: "India", states: []state{
		{code: "KA", name: "Karnataka", cities: []string{"Bengaluru", "Mysuru"}},
		{code: "MH", name: "Maharashtra", cities: []string{"Mumbai", "Pune"}},
		{code: "TN", name: "Tamil Nadu", cities: []string{"Chennai", "Coimbatore"}},
	}},
	{code: "ID", name: "Indonesia", states: []state{
		{code: "JK", name: "Jakarta", cities: []string{"Jakarta"}},
		{code: "JB", name: "West Java", cities: []string{"Bandung", "Bekasi", "Bogor"}},
	}},
	{code: "SG", name: "Singapore", states: []state{
		{code: "01", name: "Central Singapore", cities: []string{"Singapore"}},
	}},
}

func Countries() []Country {
	out := make([]Country, 0, len(directory))
	for _, c := range directory {
		out = append(out, Country{ISOCode: c.code, Name: c.name})
	}
	return out
}

// StatesOf returns the subdivisions of a country, empty when the country is
// unset or unknown.
func StatesOf(countryCode string) []State {
	c, ok := findCountry(countryCode)
	if !ok {
		return nil
	}
	out := make([]State, 0, len(c.states))
	for _, s := range c.states {
		out = append(out, State{ISOCode: s.code, Name: s.name})
	}
	return out
}

// CitiesOf returns the localities of a state, empty unless both parents are set.
func CitiesOf(countryCode, stateCode string) []string {
	s, ok := findState(countryCode, stateCode)
	if !ok {
		return nil
	}
	out := make([]string, len(s.cities))
	copy(out, s.cities)
	return out
}

// ValidTriple reports whether a (country, state, city) selection is internally
// consistent: a child may only be set when its parent is, and each set level
// must exist under its parent. Empty levels are always valid.
func ValidTriple(countryCode, stateCode, city string) bool {
	if countryCode == "" {
		return stateCode == "" && city == ""
	}
	if _, ok := findCountry(countryCode); !ok {
		return false
	}
	if stateCode == "" {
		return city == ""
	}
	s, ok := findState(countryCode, stateCode)
	if !ok {
		return false
	}
	if city == "" {
		return true
	}
	for _, c := range s.cities {
		if c == city {
			return true
		}
	}
	return false
}

func findCountry(code string) (country, bool) {
	if code == "" {
		return country{}, false
	}
	for _, c := range directory {
		if c.code == code {
			return c, true
		}
	}
	return country{}, false
}

func findState(countryCode, stateCode string) (state, bool) {
	c, ok := findCountry(countryCode)
	if !ok || stateCode == "" {
		return state{}, false
	}
	for _, s := range c.states {
		if s.code == stateCode {
			return s, true
		}
	}
	return state{}, false
}
