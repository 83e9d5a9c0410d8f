// Package relay speaks dhlink's JSON-over-HTTP protocol.
//
// It holds the wire types (the only place where integers and envelopes are
// parsed from the network) and an HTTP client implementing
// domain.RelayClient. The server side lives in internal/responder.
//
// Endpoints:
//
//	GET  /handshake/params          {"p": "0x..", "g": 2}
//	POST /handshake/exchange        {"public_key": "0x.."} -> same shape
//	DELETE /handshake               drop the relay's key for the caller
//	POST /messages                  {"encrypted_content": b64, "iv": b64}
//	GET  /messages?limit=N          [{"id", "from", "to", "encrypted_content", "iv", "timestamp"}]
//	POST /messages/ack              {"count": N}
//	POST /messages/{id}/decrypt     {"message_id", "from", "decrypted_content", "timestamp"}
//
// Every request names its user in the X-Dhlink-User header. All requests
// accept a context for cancellation and deadlines. Non-2xx statuses are
// returned as *StatusError carrying the method, full URL, status and the
// server's detail message.
package relay
