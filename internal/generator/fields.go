// Package generator produces fake datasets from persisted schemas.
// Field kinds are described by option specs so the schema wizard can
// prompt for them.
package generator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// OptionSpec describes one option a field kind accepts. Default carries
// both the fallback value and the expected type.
type OptionSpec struct {
	Key         string
	Description string
	Default     any
}

// Kind is a generatable field type.
type Kind struct {
	Name        string
	Description string
	Options     []OptionSpec
	generate    func(g *Generator, opts Options) (any, error)
}

// Options are the per-field generation options from a schema. Values
// decoded from JSON arrive as float64; the accessors normalize.
type Options map[string]any

// Int reads an integer option with a fallback.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// Float reads a float option with a fallback.
func (o Options) Float(key string, def float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// Bool reads a boolean option with a fallback.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// String reads a string option with a fallback.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok && v != "" {
		return v
	}
	return def
}

// kinds is the ordered registry of field kinds.
var kinds = []Kind{
	{
		Name:        "uuid",
		Description: "A random UUID (universally unique identifier)",
		generate: func(_ *Generator, _ Options) (any, error) {
			return uuid.NewString(), nil
		},
	},
	{
		Name:        "name",
		Description: "A realistic full name",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.Name(), nil
		},
	},
	{
		Name:        "email",
		Description: "A realistic email address",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.Email(), nil
		},
	},
	{
		Name:        "street",
		Description: "A realistic street name",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.Street(), nil
		},
	},
	{
		Name:        "city",
		Description: "A realistic city name",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.City(), nil
		},
	},
	{
		Name:        "postcode",
		Description: "A realistic postcode",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.Zip(), nil
		},
	},
	{
		Name:        "company",
		Description: "A fake company or brand name",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.Company(), nil
		},
	},
	{
		Name:        "url",
		Description: "A realistic-looking URL",
		generate: func(_ *Generator, _ Options) (any, error) {
			return gofakeit.URL(), nil
		},
	},
	{
		Name:        "password",
		Description: "A random password with optional special characters",
		Options: []OptionSpec{
			{Key: "min_length", Description: "Minimum password length", Default: 8},
			{Key: "max_length", Description: "Maximum password length", Default: 16},
			{Key: "use_special_chars", Description: "Include special characters", Default: true},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			minLen := opts.Int("min_length", 8)
			maxLen := opts.Int("max_length", 16)
			if maxLen < minLen {
				maxLen = minLen
			}
			length := gofakeit.Number(minLen, maxLen)
			special := opts.Bool("use_special_chars", true)
			return gofakeit.Password(true, true, true, special, false, length), nil
		},
	},
	{
		Name:        "integer",
		Description: "A random integer within a given range",
		Options: []OptionSpec{
			{Key: "min", Description: "Minimum integer value", Default: 0},
			{Key: "max", Description: "Maximum integer value", Default: 100},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			return gofakeit.Number(opts.Int("min", 0), opts.Int("max", 100)), nil
		},
	},
	{
		Name:        "price",
		Description: "A price between a range, rounded to two decimals",
		Options: []OptionSpec{
			{Key: "min", Description: "Minimum price", Default: 1.0},
			{Key: "max", Description: "Maximum price", Default: 1000.0},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			p := gofakeit.Price(opts.Float("min", 1), opts.Float("max", 1000))
			return math.Round(p*100) / 100, nil
		},
	},
	{
		Name:        "lorem",
		Description: "Random filler text (Lorem Ipsum)",
		Options: []OptionSpec{
			{Key: "char_length", Description: "Max number of characters", Default: 100},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			limit := opts.Int("char_length", 100)
			text := gofakeit.LoremIpsumParagraph(1, 4, 12, " ")
			if len(text) > limit {
				text = strings.TrimSpace(text[:limit])
			}
			return text, nil
		},
	},
	{
		Name:        "phone",
		Description: "A phone number with custom prefix and length",
		Options: []OptionSpec{
			{Key: "char_length", Description: "Phone number length", Default: 11},
			{Key: "prefix", Description: "Phone number prefix", Default: "0"},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			length := opts.Int("char_length", 11)
			prefix := opts.String("prefix", "0")
			remaining := length - len(prefix)
			if remaining <= 0 {
				return prefix[:length], nil
			}
			return prefix + gofakeit.DigitN(uint(remaining)), nil
		},
	},
	{
		Name:        "date",
		Description: "A UTC datetime (ISO format) between two dates",
		Options: []OptionSpec{
			{Key: "start_day", Description: "Start day", Default: 1},
			{Key: "start_month", Description: "Start month", Default: 1},
			{Key: "start_year", Description: "Start year", Default: 2000},
			{Key: "end_day", Description: "End day", Default: 31},
			{Key: "end_month", Description: "End month", Default: 12},
			{Key: "end_year", Description: "End year", Default: 2025},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			start := time.Date(opts.Int("start_year", 2000), time.Month(opts.Int("start_month", 1)),
				opts.Int("start_day", 1), 0, 0, 0, 0, time.UTC)
			end := time.Date(opts.Int("end_year", 2025), time.Month(opts.Int("end_month", 12)),
				opts.Int("end_day", 31), 0, 0, 0, 0, time.UTC)
			if !end.After(start) {
				return nil, fmt.Errorf("%w: date range %s..%s", ErrInvalidOptions,
					start.Format(time.DateOnly), end.Format(time.DateOnly))
			}
			return gofakeit.DateRange(start, end).UTC().Format("2006-01-02T15:04:05Z"), nil
		},
	},
	{
		Name:        "avatar",
		Description: "An avatar link (pravatar)",
		Options: []OptionSpec{
			{Key: "size", Description: "The size of the square avatar in pixels", Default: 100},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			return fmt.Sprintf("https://i.pravatar.cc/%d?u=%s", opts.Int("size", 100), uuid.NewString()), nil
		},
	},
	{
		Name:        "image",
		Description: "An image link (picsum)",
		Options: []OptionSpec{
			{Key: "width", Description: "Width (pixels)", Default: 100},
			{Key: "height", Description: "Height (pixels)", Default: 100},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d",
				uuid.NewString(), opts.Int("width", 100), opts.Int("height", 100)), nil
		},
	},
	{
		Name:        "dog_image",
		Description: "An image of a pet (place.dog)",
		Options: []OptionSpec{
			{Key: "width", Description: "Width (pixels)", Default: 100},
			{Key: "height", Description: "Height (pixels, defaults to width)", Default: 0},
		},
		generate: func(_ *Generator, opts Options) (any, error) {
			width := opts.Int("width", 100)
			height := opts.Int("height", 0)
			if height <= 0 {
				height = width
			}
			return fmt.Sprintf("https://place.dog/%d/%d", width, height), nil
		},
	},
	{
		Name:        "foreign_key",
		Description: "The id field of a random entry in a specified dataset",
		Options: []OptionSpec{
			{Key: "dataset", Description: "The name of the referenced dataset", Default: ""},
		},
		generate: func(g *Generator, opts Options) (any, error) {
			return g.randomForeignID(opts.String("dataset", ""))
		},
	},
}

// Kinds returns the registered field kinds in declaration order.
func Kinds() []Kind {
	return kinds
}

// KindByName resolves a field kind.
func KindByName(name string) (Kind, error) {
	for _, k := range kinds {
		if k.Name == name {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("%w: %s", ErrUnknownKind, name)
}
