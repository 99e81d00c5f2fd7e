// Package config manages user-level settings stored at ~/.agentkit/config.yaml
// (or $AGENTKIT_HOME/config.yaml). Settings can also come from AGENTKIT_*
// environment variables and from command-line flags bound by the cli package.
package config
