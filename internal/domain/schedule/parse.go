package schedule

// RawConfig is a scheduling config as it arrives from a request or file,
// before the weekday and times are parsed.
type RawConfig struct {
	MatchDay                string
	StartTime               string
	EndTime                 string
	VenuesAvailable         int
	SlotsPerVenue           int
	RestWeeksBetweenMatches int
}

// ParseConfig parses and validates raw in one pass. The returned
// *ConfigError lists every bad field, parse failures included.
func ParseConfig(raw RawConfig) (Config, error) {
	cfg := Config{
		VenuesAvailable:         raw.VenuesAvailable,
		SlotsPerVenue:           raw.SlotsPerVenue,
		RestWeeksBetweenMatches: raw.RestWeeksBetweenMatches,
	}

	var violations []Violation
	failed := make(map[string]struct{})
	if err := cfg.MatchDay.UnmarshalText([]byte(raw.MatchDay)); err != nil {
		violations = append(violations, Violation{Field: "MatchDay", Rule: "weekday", Message: err.Error()})
		failed["MatchDay"] = struct{}{}
	}
	if err := cfg.StartTime.UnmarshalText([]byte(raw.StartTime)); err != nil {
		violations = append(violations, Violation{Field: "StartTime", Rule: "time", Message: err.Error()})
		failed["StartTime"] = struct{}{}
	}
	if err := cfg.EndTime.UnmarshalText([]byte(raw.EndTime)); err != nil {
		violations = append(violations, Violation{Field: "EndTime", Rule: "time", Message: err.Error()})
		failed["EndTime"] = struct{}{}
	}

	if err := cfg.Validate(); err != nil {
		cfgErr, ok := err.(*ConfigError)
		if !ok {
			return Config{}, err
		}
		for _, v := range cfgErr.Violations {
			if _, skip := failed[v.Field]; skip {
				continue
			}
			violations = append(violations, v)
		}
	}

	if err := newConfigError(violations); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
