// Package config holds runtime configuration for sitemapper.
//
// Configuration comes from three layers, lowest precedence first:
// built-in defaults, the optional .sitemapper YAML file (searched in
// the current directory, then the user's home directory), and CLI
// flags. The Config struct is populated once at startup and passed
// through the application by dependency injection; there is no global
// configuration state.
package config
