// Package config loads mkbranch configuration from TOML files.
//
// Two sources are merged: the global config at
// ~/.config/mkbranch/config.toml (or $XDG_CONFIG_HOME/mkbranch/config.toml)
// and an optional per-project .mkbranch.toml found by walking up from the
// working directory. Per-project values override global ones.
//
// Invalid regex overrides in [regex] are not load errors; they fall back
// to the built-in patterns with a logged warning when the field rules are
// built. Structural problems (bad TOML, unknown cursor_start, an
// uncompilable forbidden_source_branches pattern) are load errors.
package config
