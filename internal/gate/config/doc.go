// Package config loads runtime configuration for CypherGate.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with --config/-c. JSON, YAML and TOML
//     are accepted; the format follows the file extension.
//  3. Environment variables prefixed with CYPHERGATE_, nested keys joined
//     with "_" (store.backend -> CYPHERGATE_STORE_BACKEND).
//  4. Command-line flags registered by RegisterFlags, when set explicitly.
//
// # File schema
//
//	data_dir: /home/alice/.cyphergate
//	store:
//	  backend: sqlite          # sqlite | file | redis
//	  redis_url: redis://localhost:6379/0
//	  redis_key_prefix: "cyphergate:"
//	hash:
//	  algorithm: bcrypt        # bcrypt | argon2id | sha512-crypt
//	  bcrypt_cost: 12
//	auth:
//	  max_attempts: 3
//	  failure_delay: 1s
//	shell:
//	  program: sh
//	log:
//	  level: error
//	  format: text             # text | json
//	  file: ""                 # empty means stderr
//
// Load always finishes with Validate, so callers receive either a usable
// Config or an error matching ErrInvalid.
package config
