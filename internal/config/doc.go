// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/rpmgen/config.toml (or the XDG
// equivalent on Linux, ~/Library/Application Support/rpmgen/config.toml on
// macOS, %APPDATA%\rpmgen\config.toml on Windows), then overridden by
// RPMGEN_* environment variables and finally by CLI flags. It covers only
// tool behavior — output location, payload compression, target architecture,
// verbosity — never package content, which always comes from the manifest.
package config
