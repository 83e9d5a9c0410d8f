// Package commands implements the dhlink CLI.
//
// Key material is never written to disk, so every command that needs a
// session runs the full handshake against the relay first:
//
//	dhlink params                 show the group served by the relay
//	dhlink handshake              establish a session and print its fingerprint
//	dhlink send <message>         encrypt, send and wait for the relay's receipt
//	dhlink chat                   interactive session; /refresh re-keys, /quit exits
//	dhlink reveal <id>            ask the relay to decrypt a message we sent
//	dhlink outbox                 list envelopes recorded locally
//	dhlink config init            write the current settings to config.toml
//
// Settings come from $HOME/.dhlink/config.toml and are overridden by flags.
package commands
