// Package config loads typed configuration structs from environment
// variables with github.com/caarlos0/env, after reading an optional .env
// file with github.com/joho/godotenv.
package config
