// Package registry implements the Connection Registry.
//
// The registry maps each live connection handle to the room and user name it
// joined with. It keeps a per-room index so fan-out only visits members of the
// target room, and it returns members in registration order so delivery order
// is stable.
//
// A Registry is not safe for concurrent use. The relay hub owns one and guards
// it with the same mutex that guards the room directory.
package registry
