// Package config loads signdeck's configuration with viper and validates it
// with go-playground/validator.
//
// Values come from built-in defaults, an optional .env file, an optional
// signdeck.yaml file and SIGNDECK_-prefixed environment variables, with
// later sources taking precedence.
package config
