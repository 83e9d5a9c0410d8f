// Package main runs the development relay for dhlink. It answers the key
// exchange, keeps one symmetric key per user in memory and decrypts incoming
// messages server-side, queuing an encrypted receipt for the sender.
//
// HTTP API
//
//	GET /handshake/params
//	    Return the group as {"p": "<hex>", "g": <int>}.
//
//	POST /handshake/exchange {"public_key": "0x..."}
//	    Run the exchange for the caller and answer with the relay's public
//	    value. Any key previously held for the caller is replaced.
//
//	DELETE /handshake
//	    Drop the key held for the caller.
//
//	POST /messages {"encrypted_content": b64, "iv": b64}
//	    Store an envelope and queue a receipt ("ack:<id>" or
//	    "unreadable:<id>") encrypted under the caller's key.
//
//	GET /messages?limit=N
//	    Return up to N queued envelopes for the caller, oldest first.
//
//	POST /messages/ack {"count": N}
//	    Drop the first N queued envelopes.
//
//	POST /messages/{id}/decrypt
//	    Decrypt a message the caller sent, with the key currently held.
//
// The caller is named by the X-Dhlink-User header. There is no
// authentication.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry {"detail": "..."}.
//   - With --log-level info or lower, an access log records method, path,
//     status and duration for each request.
//   - The default listen address is :8080.
package main
