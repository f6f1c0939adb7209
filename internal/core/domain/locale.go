package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Locale identifies one of the supported content languages.
// The set is closed; values outside it are rejected by ParseLocale.
type Locale uint8

// Supported locales, in canonical order.
const (
	// LocaleJA is Japanese, the default locale.
	LocaleJA Locale = iota

	// LocaleEN is English.
	LocaleEN

	// LocaleZhTW is Traditional Chinese.
	LocaleZhTW

	// LocaleZhCN is Simplified Chinese.
	LocaleZhCN
)

// NumLocales is the size of the supported locale set.
const NumLocales = 4

// DefaultLocale is used when no locale is requested.
const DefaultLocale = LocaleJA

var localeCodes = [NumLocales]string{"ja", "en", "zh-TW", "zh-CN"}

// ParseLocale converts a locale code into a Locale.
// Matching is case-insensitive and accepts "_" in place of "-".
func ParseLocale(code string) (Locale, error) {
	normalised := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	for i, c := range localeCodes {
		if strings.EqualFold(c, normalised) {
			return Locale(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLocale, code)
}

// AllLocales returns every supported locale in canonical order.
func AllLocales() []Locale {
	return []Locale{LocaleJA, LocaleEN, LocaleZhTW, LocaleZhCN}
}

// IsValid returns true if the locale is in the supported set.
func (l Locale) IsValid() bool {
	return int(l) < NumLocales
}

// String returns the locale code, e.g. "zh-TW".
func (l Locale) String() string {
	if !l.IsValid() {
		return fmt.Sprintf("Locale(%d)", uint8(l))
	}
	return localeCodes[l]
}

// Ideographic returns true for locales whose text is measured per character
// rather than per word.
func (l Locale) Ideographic() bool {
	return l == LocaleJA || l == LocaleZhTW || l == LocaleZhCN
}

// Secondary returns the locale consulted after l when l has no value:
// English, or Japanese when l is English.
func (l Locale) Secondary() Locale {
	if l == LocaleEN {
		return LocaleJA
	}
	return LocaleEN
}

// FallbackChain returns l, its secondary, then the remaining locales in
// canonical order.
func (l Locale) FallbackChain() []Locale {
	chain := make([]Locale, 0, NumLocales)
	chain = append(chain, l, l.Secondary())
	for _, other := range AllLocales() {
		if other != l && other != l.Secondary() {
			chain = append(chain, other)
		}
	}
	return chain
}

// MarshalText implements encoding.TextMarshaler.
func (l Locale) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedLocale, uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Locale) UnmarshalText(text []byte) error {
	parsed, err := ParseLocale(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Localized is a total mapping from every supported locale to a value.
// Locales without content hold the zero value of T.
type Localized[T any] [NumLocales]T

// Uniform returns a Localized holding v for every locale.
func Uniform[T any](v T) Localized[T] {
	var m Localized[T]
	for i := range m {
		m[i] = v
	}
	return m
}

// Get returns the value for locale l.
func (m Localized[T]) Get(l Locale) T {
	return m[l]
}

// Set stores v for locale l.
func (m *Localized[T]) Set(l Locale, v T) {
	m[l] = v
}

// MarshalJSON encodes the mapping as an object keyed by locale code.
func (m Localized[T]) MarshalJSON() ([]byte, error) {
	obj := make(map[string]T, NumLocales)
	for i, v := range m {
		obj[localeCodes[i]] = v
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes an object keyed by locale code.
// Keys that are not supported locales are ignored.
func (m *Localized[T]) UnmarshalJSON(data []byte) error {
	var obj map[string]T
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for code, v := range obj {
		l, err := ParseLocale(code)
		if err != nil {
			continue
		}
		m[l] = v
	}
	return nil
}

// FirstNonEmpty walks chain and returns the first non-empty string.
func FirstNonEmpty(m Localized[string], chain []Locale) (string, Locale, bool) {
	for _, l := range chain {
		if v := m.Get(l); v != "" {
			return v, l, true
		}
	}
	return "", 0, false
}
