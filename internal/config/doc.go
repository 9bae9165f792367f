// Package config loads settings for the API server and the terminal client.
//
// The server reads an optional .env file and then the process environment.
// The client reads an optional TOML file and then the environment; values
// from the environment win.
package config
