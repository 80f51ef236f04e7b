package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/mjstudio/pkg/errors"
	"github.com/arthur-debert/mjstudio/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "MJSTUDIO_"

// Sources names the files read by Load
type Sources struct {
	ConfigFile string
	StateFile  string
}

// Load builds the configuration from defaults, the user file, the state
// file and the environment. Missing files are skipped.
func Load(src Sources) (Config, error) {
	return LoadWithOverrides(src, nil)
}

// LoadWithOverrides is Load with a final layer of dotted-key overrides,
// used for command line flags
func LoadWithOverrides(src Sources, overrides map[string]interface{}) (Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config, then 3. state written by the app
	for _, path := range []string{src.ConfigFile, src.StateFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, errors.Wrapf(err, errors.ErrConfigLoad, "cannot stat %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return Config{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(" "),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return cfg, nil
}

// envKey maps MJSTUDIO_EXPORT__LAST_FOLDER to export.last_folder. Variables
// without a section separator, like MJSTUDIO_DATA_DIR, are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}
