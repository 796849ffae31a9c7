// Package room implements the Room Directory.
//
// The directory maps a room id to its presence set: the display names of the
// users currently in the room, without duplicates, in first-join order.
// Rooms are created lazily on first join and, unless configured otherwise,
// removed when their last member leaves.
//
// A Directory is not safe for concurrent use; the relay hub serializes access.
package room
