// Package model defines shared data structures.
package model

import "time"

// Classes toggles the character classes used for generation.
type Classes struct {
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultClasses returns uppercase, lowercase and numbers enabled.
func DefaultClasses() Classes {
	return Classes{Uppercase: true, Lowercase: true, Numbers: true}
}

// Names returns the enabled class names in generation order.
func (c Classes) Names() []string {
	var names []string
	if c.Uppercase {
		names = append(names, "upper")
	}
	if c.Lowercase {
		names = append(names, "lower")
	}
	if c.Numbers {
		names = append(names, "numbers")
	}
	if c.Symbols {
		names = append(names, "symbols")
	}
	return names
}

// GeneratorConfig defines generator settings.
type GeneratorConfig struct {
	Length  int `validate:"min=4,max=50" label:"--length"`
	Classes Classes
	Auto    bool
}

// TranslatorConfig defines translator settings.
type TranslatorConfig struct {
	Lang     string        `validate:"required,lang" label:"--lang"`
	Endpoint string        `validate:"required,url" label:"endpoint"`
	Host     string        `validate:"required,hostname_rfc1123" label:"TUIKIT_RAPIDAPI_HOST"`
	APIKey   string        `validate:"required" label:"TUIKIT_RAPIDAPI_KEY"`
	Timeout  time.Duration `validate:"gt=0" label:"timeout"`
}

// HistoryConfig defines filters for the history command.
type HistoryConfig struct {
	Kind string `validate:"oneof=all gen translate" label:"--kind"`
	Last int    `validate:"gte=0" label:"--last"`
}

// GeneratedRecord captures a generated string.
type GeneratedRecord struct {
	ID        int64
	CreatedAt time.Time
	Value     string
	Length    int
	Classes   Classes
}

// TranslationRecord captures a translation attempt.
type TranslationRecord struct {
	ID        string
	CreatedAt time.Time
	Text      string
	Lang      string
	Result    string
	Error     string
}
