// Package config loads mjstudio settings.
//
// Values are layered, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, config.toml in the config dir
//  3. the state file, state.toml in the state dir, written by the app
//  4. MJSTUDIO_<SECTION>__<KEY> environment variables
//
// The state file only holds values the app remembers between runs, such
// as the last export folder. Store is the process-wide holder of the
// loaded configuration and the only writer of the state file.
package config
