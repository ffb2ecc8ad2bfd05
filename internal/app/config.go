// Package app wires preset lookup, validation and normalization into the
// operations the transports expose.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xtding233/equity-backend/internal/equity"
	"github.com/xtding233/equity-backend/internal/preset"
)

// ErrUnknownPreset is returned when a request names a preset that does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetSource supplies shared defaults and named presets.
type PresetSource interface {
	Defaults() (equity.Defaults, error)
	Apply(name string, raw equity.Raw) (equity.Raw, error)
}

// ConfigService validates and resolves equity requests.
type ConfigService struct {
	presets PresetSource
	parser  equity.CardParser
	log     *zap.SugaredLogger
}

// NewConfigService returns a service. A nil presets source means system
// defaults and no presets; a nil parser means the card-group parser.
func NewConfigService(presets PresetSource, parser equity.CardParser, log *zap.SugaredLogger) *ConfigService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ConfigService{presets: presets, parser: parser, log: log}
}

// Validate reports whether raw, with the named preset applied, is acceptable.
func (s *ConfigService) Validate(ctx context.Context, presetName string, raw equity.Raw) error {
	_, err := s.Resolve(ctx, presetName, raw)
	return err
}

// Resolve validates raw, with the named preset applied, and fills its defaults.
func (s *ConfigService) Resolve(ctx context.Context, presetName string, raw equity.Raw) (equity.Resolved, error) {
	if err := ctx.Err(); err != nil {
		return equity.Resolved{}, err
	}

	merged, defaults, err := s.prepare(presetName, raw)
	if err != nil {
		return equity.Resolved{}, err
	}

	v := equity.NewValidator(s.parser, defaults)
	out, err := equity.Resolve(v, equity.NewNormalizer(defaults), merged)
	if err != nil {
		var ve *equity.ValidationError
		if errors.As(err, &ve) {
			s.log.Debugw("request rejected", "preset", presetName, "field", ve.Field, "value", ve.Value, "reason", ve.Reason)
		} else {
			s.log.Errorw("resolve failed", "preset", presetName, "error", err)
		}
		return equity.Resolved{}, err
	}

	s.log.Debugw("request resolved", "preset", presetName, "numPlayers", out.NumPlayers, "hands", len(out.Hands))
	return out, nil
}

func (s *ConfigService) prepare(presetName string, raw equity.Raw) (equity.Raw, equity.Defaults, error) {
	if s.presets == nil {
		if presetName != "" {
			return nil, equity.Defaults{}, fmt.Errorf("%w: %q", ErrUnknownPreset, presetName)
		}
		return raw, equity.SystemDefaults(), nil
	}

	defaults, err := s.presets.Defaults()
	if err != nil {
		s.log.Errorw("load defaults", "error", err)
		return nil, equity.Defaults{}, fmt.Errorf("load defaults: %w", err)
	}

	merged, err := s.presets.Apply(presetName, raw)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) || errors.Is(err, preset.ErrBadName) {
			return nil, equity.Defaults{}, fmt.Errorf("%w: %w", ErrUnknownPreset, err)
		}
		s.log.Errorw("load preset", "preset", presetName, "error", err)
		return nil, equity.Defaults{}, fmt.Errorf("load preset: %w", err)
	}
	return merged, defaults, nil
}
