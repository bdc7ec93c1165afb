// Package config loads typed configuration from environment variables.
//
// Load reads a dotenv file (".env" by default, once per process) with
// github.com/joho/godotenv and then parses the environment into a struct
// with github.com/caarlos0/env/v11, so the usual env and envDefault tags
// apply. Process variables always win over the file.
package config
