// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.fieldlens/config.toml
//   - Watcher: reloads a ConfigStore when the file changes on disk
package file
