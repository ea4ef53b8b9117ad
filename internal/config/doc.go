// Package config handles configuration loading, parsing, and validation
// from a YAML file and MEDFLUENT_* environment variables. It provides
// type-safe access to the settings needed by the session, persistence and
// HTTP layers while keeping configuration details out of the domain.
package config
