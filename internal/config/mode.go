package config

import "strings"

// Mode identifies the build/runtime environment.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ParseMode normalizes a mode string. Unknown values are kept as-is so
// custom modes (e.g. "staging") still reach the front end unchanged.
func ParseMode(raw string) Mode {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "dev", "development":
		return ModeDevelopment
	case "prod", "production":
		return ModeProduction
	default:
		return Mode(trimmed)
	}
}

func (m Mode) IsProduction() bool {
	return m == ModeProduction
}

func (m Mode) String() string {
	return string(m)
}
