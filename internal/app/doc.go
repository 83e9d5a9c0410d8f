// Package app wires application dependencies for the CLI.
//
// Config is assembled from defaults, an optional TOML file and command-line
// flags, in that order. NewWire builds the relay client, session and message
// services and the outbox store from it, exposing them via the Wire struct
// for commands to use.
package app
