// Package config builds the per-project scan policy and loads the run
// configuration.
//
// A project's policy is assembled in three steps:
//
//  1. the baseline tables embedded in embedded/defaults.toml
//  2. the overlays for every detected project type, in table order
//  3. the optional .scanner-config.json file at the project root
//
// List keys of the override file extend the baseline; target_subdirs,
// max_file_size and include_hidden replace it. A malformed override is
// reported and leaves the policy untouched.
//
// The run configuration (input and output directories, output format,
// locking) is layered with koanf: built-in defaults, then
// .unified-scanner.toml in the working directory, then the INPUT_DIR and
// OUTPUT_DIR environment variables, then command-line flags.
package config
