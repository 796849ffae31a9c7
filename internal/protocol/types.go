package protocol

import (
	"errors"
)

// Errors
var (
	ErrMalformed    = errors.New("malformed message")
	ErrMissingField = errors.New("missing required field")
	ErrUnknownType  = errors.New("unknown message type")
)

// EventType is the discriminator of an inbound client event.
type EventType string

// Inbound event types.
const (
	TypeJoin           EventType = "join"
	TypeCodeChange     EventType = "codeChange"
	TypeTyping         EventType = "typing"
	TypeLanguageChange EventType = "languageChange"
	TypeOutputChange   EventType = "outputChange"
	TypeInputChange    EventType = "inputChange"
	TypeLeaveRoom      EventType = "leaveRoom"
)

// Outbound message types.
const (
	TypeUserJoined     = "userJoined"
	TypeCodeUpdate     = "codeUpdate"
	TypeUserTyping     = "userTyping"
	TypeLanguageUpdate = "languageUpdate"
	TypeOutputUpdate   = "outputUpdate"
	TypeInputUpdate    = "inputUpdate"
)

// Event is a decoded inbound client event.
type Event interface {
	Type() EventType
}

// Join asks the relay to place the sender in a room under a display name.
type Join struct {
	RoomID   string
	UserName string
}

// CodeChange carries the full editor contents.
type CodeChange struct {
	RoomID string
	Code   string
}

// Typing signals that the sender is typing.
type Typing struct {
	RoomID   string
	UserName string
}

// LanguageChange carries the selected language identifier.
type LanguageChange struct {
	RoomID   string
	Language string
}

// OutputChange carries the latest run output.
type OutputChange struct {
	RoomID string
	Output string
}

// InputChange carries the stdin text for the next run.
type InputChange struct {
	RoomID string
	Input  string
}

// LeaveRoom asks the relay to remove the sender from its room.
type LeaveRoom struct {
	RoomID string
}

func (Join) Type() EventType           { return TypeJoin }
func (CodeChange) Type() EventType     { return TypeCodeChange }
func (Typing) Type() EventType         { return TypeTyping }
func (LanguageChange) Type() EventType { return TypeLanguageChange }
func (OutputChange) Type() EventType   { return TypeOutputChange }
func (InputChange) Type() EventType    { return TypeInputChange }
func (LeaveRoom) Type() EventType      { return TypeLeaveRoom }

// Message is an outbound frame.
type Message interface {
	MessageType() string
}

// UserJoined announces the presence list of a room after a join or leave.
type UserJoined struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

// CodeUpdate relays editor contents.
type CodeUpdate struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// UserTyping relays a typing indicator.
type UserTyping struct {
	Type string `json:"type"`
	User string `json:"user"`
}

// LanguageUpdate relays a language selection.
type LanguageUpdate struct {
	Type     string `json:"type"`
	Language string `json:"language"`
}

// OutputUpdate relays run output.
type OutputUpdate struct {
	Type   string `json:"type"`
	Output string `json:"output"`
}

// InputUpdate relays run input.
type InputUpdate struct {
	Type  string `json:"type"`
	Input string `json:"input"`
}

func (m UserJoined) MessageType() string     { return m.Type }
func (m CodeUpdate) MessageType() string     { return m.Type }
func (m UserTyping) MessageType() string     { return m.Type }
func (m LanguageUpdate) MessageType() string { return m.Type }
func (m OutputUpdate) MessageType() string   { return m.Type }
func (m InputUpdate) MessageType() string    { return m.Type }

// NewUserJoined builds a presence message. A nil list encodes as [].
func NewUserJoined(users []string) UserJoined {
	if users == nil {
		users = []string{}
	}
	return UserJoined{Type: TypeUserJoined, Users: users}
}

func NewCodeUpdate(code string) CodeUpdate {
	return CodeUpdate{Type: TypeCodeUpdate, Code: code}
}

func NewUserTyping(user string) UserTyping {
	return UserTyping{Type: TypeUserTyping, User: user}
}

func NewLanguageUpdate(language string) LanguageUpdate {
	return LanguageUpdate{Type: TypeLanguageUpdate, Language: language}
}

func NewOutputUpdate(output string) OutputUpdate {
	return OutputUpdate{Type: TypeOutputUpdate, Output: output}
}

func NewInputUpdate(input string) InputUpdate {
	return InputUpdate{Type: TypeInputUpdate, Input: input}
}
