// Package patch applies a document of field values to a savefile.
//
// A document maps field keys to values:
//
//	CurrentRupee: 999
//	CurrentHeart: 20
//	WM_Time: "1 d 06:30"
//	Player:
//	  PlayerSavePos: [10.5, 42.0, -3.25]
//
// Nested mappings are flattened into the same savefile, so documents can group fields
// freely. Aliases rename document keys before they reach the savefile and converters turn
// friendlier text into stored values (clock text for the world clock fields by default).
package patch

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/arloliu/savkit/gametime"
	"github.com/arloliu/savkit/internal/options"
)

// Setter is the part of a savefile a Patcher writes through.
type Setter interface {
	Set(key string, value any) error
}

// Converter turns a document value into the value passed to Set.
type Converter func(value any) (any, error)

// Result lists the document keys a call to Apply wrote and the ones it rejected, after
// alias resolution and in document order.
type Result struct {
	Applied []string
	Failed  []string
}

// Patcher applies documents with a fixed alias table and converter set. A Patcher is
// immutable after New and safe for concurrent use.
type Patcher struct {
	aliases    map[string]string
	converters map[string]Converter
	logger     *slog.Logger
}

// Option configures a Patcher.
type Option = options.Option[*Patcher]

// DefaultAliases returns the document names that are renamed by default.
func DefaultAliases() map[string]string {
	return map[string]string{
		"CurrentHeart":  "CurrentHart",
		"MaxHeartValue": "MaxHartValue",
	}
}

// DefaultConverters returns the converters installed by default: clock text for the world
// clock fields.
func DefaultConverters() map[string]Converter {
	return map[string]Converter{
		"WM_Time":            ClockValue,
		"WM_BloodyMoonTimer": ClockValue,
	}
}

// WithAliases adds aliases on top of the defaults. Later entries win.
func WithAliases(aliases map[string]string) Option {
	return options.NoError(func(p *Patcher) {
		maps.Copy(p.aliases, aliases)
	})
}

// WithConverter installs conv for the field key, replacing any default.
func WithConverter(key string, conv Converter) Option {
	return options.New(func(p *Patcher) error {
		if conv == nil {
			return fmt.Errorf("patch: nil converter for %q", key)
		}
		p.converters[key] = conv

		return nil
	})
}

// WithLogger sets the logger rejected fields are reported to.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(p *Patcher) {
		if logger != nil {
			p.logger = logger
		}
	})
}

// New creates a Patcher with the default aliases and converters.
func New(opts ...Option) (*Patcher, error) {
	p := &Patcher{
		aliases:    DefaultAliases(),
		converters: DefaultConverters(),
		logger:     slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Resolve returns the field key a document key is written to.
func (p *Patcher) Resolve(key string) string {
	if alias, ok := p.aliases[key]; ok {
		return alias
	}

	return key
}

// Apply writes every value of doc to sav. Keys are visited in sorted order and nested
// mappings recurse. A rejected field does not stop the others; the returned error joins
// every failure and each one names its key.
func (p *Patcher) Apply(sav Setter, doc map[string]any) (Result, error) {
	var res Result
	var failures []error
	p.apply(sav, doc, &res, &failures)

	return res, errors.Join(failures...)
}

func (p *Patcher) apply(sav Setter, doc map[string]any, res *Result, failures *[]error) {
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		value := doc[key]
		if nested, ok := asMapping(value); ok {
			p.apply(sav, nested, res, failures)
			continue
		}

		field := p.Resolve(key)
		err := p.set(sav, field, value)
		if err != nil {
			p.logger.Warn("patch field rejected", slog.String("key", field), slog.Any("value", value), slog.Any("error", err))
			*failures = append(*failures, fmt.Errorf("%s: %w", field, err))
			res.Failed = append(res.Failed, field)

			continue
		}
		res.Applied = append(res.Applied, field)
	}
}

func (p *Patcher) set(sav Setter, field string, value any) error {
	if conv, ok := p.converters[field]; ok {
		converted, err := conv(value)
		if err != nil {
			return err
		}
		value = converted
	}

	return sav.Set(field, value)
}

// ClockValue converts "hh:mm" or "N d hh:mm" text to a world clock value. Other values pass
// through unchanged.
func ClockValue(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}

	return gametime.TimeToValue(text)
}

// asMapping accepts the mapping shapes produced by encoding/json and yaml.v3.
func asMapping(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}
