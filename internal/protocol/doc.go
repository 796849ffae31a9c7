// Package protocol defines the JSON wire format spoken between editor clients
// and the relay.
//
// Inbound frames carry a "type" discriminator and decode into one of a closed
// set of events:
//   - join, leaveRoom (presence)
//   - codeChange, typing (relayed to everyone but the sender)
//   - languageChange, outputChange, inputChange (relayed to the whole room)
//
// Outbound frames are built with the New* constructors and serialized with
// Encode. Room ids and user names are NFC-normalized on decode so visually
// identical names share one presence entry.
package protocol
