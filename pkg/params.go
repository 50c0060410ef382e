package trigdet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables overriding parameter-file values.
const EnvPrefix = "TRIGDET_"

// LoadParams reads the run parameter file and layers environment overrides
// on top. Keys keep the exact spelling they have in the file; an override
// for hms_trig_numAdc is spelled TRIGDET_hms_trig_numAdc.
func LoadParams(filename string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(filename), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading parameter file %q: %w", filename, err)
	}
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(s, EnvPrefix)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("error reading parameter overrides: %w", err)
	}
	return k, nil
}

// LoadChannelConfig reads the channel counts and names for one detector.
// The parameter source must define <prefix>_numAdc, <prefix>_numTdc,
// <prefix>_adcNames and <prefix>_tdcNames; the name lists are single
// whitespace-delimited strings.
func LoadChannelConfig(k *koanf.Koanf, prefix string) (ChannelConfig, error) {
	var cfg ChannelConfig

	keys := []string{
		prefix + "_numAdc",
		prefix + "_numTdc",
		prefix + "_adcNames",
		prefix + "_tdcNames",
	}
	for _, key := range keys {
		if !k.Exists(key) {
			return cfg, &ErrMissingParam{Key: key}
		}
	}

	cfg.NumAdc = k.Int(prefix + "_numAdc")
	cfg.NumTdc = k.Int(prefix + "_numTdc")
	cfg.AdcNames = strings.Fields(k.String(prefix + "_adcNames"))
	cfg.TdcNames = strings.Fields(k.String(prefix + "_tdcNames"))

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DetectorMapFromParams builds the detector map from the parameter source
// instead of the run database (no-DB mode). The map is a whitespace-delimited
// string of crate:slot:channel:plane:bar tuples under <prefix>_map.
func DetectorMapFromParams(k *koanf.Koanf, prefix string) (DetectorMap, error) {
	key := prefix + "_map"
	if !k.Exists(key) {
		return nil, &ErrMissingParam{Key: key}
	}

	detMap := make(DetectorMap)
	for _, entry := range strings.Fields(k.String(key)) {
		parts := strings.Split(entry, ":")
		if len(parts) != 5 {
			return nil, fmt.Errorf("malformed map entry %q: want crate:slot:channel:plane:bar", entry)
		}
		fields := make([]int, len(parts))
		for i, part := range parts {
			value, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("malformed map entry %q: %w", entry, err)
			}
			fields[i] = value
		}
		addr := DetAddress{Crate: uint16(fields[0]), Slot: uint16(fields[1]), Ch: uint16(fields[2])}
		detMap[addr] = DetChannel{Plane: fields[3], Bar: fields[4]}
	}
	return detMap, nil
}
