package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// envelope is used to extract the message type before full parsing.
type envelope struct {
	Type *string `json:"type"`
}

// roomID accepts a JSON string or number. Numbers become their decimal text.
type roomID string

func (r *roomID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = roomID(normalize(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("roomId must be a string or number: %s", b)
	}
	*r = roomID(formatNumber(n))
	return nil
}

func formatNumber(n json.Number) string {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

func normalize(s string) string {
	return norm.NFC.String(s)
}

type joinPayload struct {
	RoomID   roomID  `json:"roomId"`
	UserName *string `json:"userName"`
}

type codeChangePayload struct {
	RoomID roomID  `json:"roomId"`
	Code   *string `json:"code"`
}

type typingPayload struct {
	RoomID   roomID  `json:"roomId"`
	UserName *string `json:"userName"`
}

type languageChangePayload struct {
	RoomID   roomID  `json:"roomId"`
	Language *string `json:"language"`
}

type outputChangePayload struct {
	RoomID roomID  `json:"roomId"`
	Output *string `json:"output"`
}

type inputChangePayload struct {
	RoomID roomID  `json:"roomId"`
	Input  *string `json:"input"`
}

type leaveRoomPayload struct {
	RoomID roomID `json:"roomId"`
}

// Decode parses one inbound frame into an Event.
//
// Errors wrap ErrMalformed for invalid JSON or wrongly typed fields,
// ErrMissingField when a required field is absent or empty, and
// ErrUnknownType for a type outside the known set.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == nil || *env.Type == "" {
		return nil, fmt.Errorf("%w: type", ErrMissingField)
	}

	switch EventType(*env.Type) {
	case TypeJoin:
		var p joinPayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.RoomID == "" {
			return nil, fmt.Errorf("%w: roomId", ErrMissingField)
		}
		if p.UserName == nil || *p.UserName == "" {
			return nil, fmt.Errorf("%w: userName", ErrMissingField)
		}
		return Join{RoomID: string(p.RoomID), UserName: normalize(*p.UserName)}, nil

	case TypeCodeChange:
		var p codeChangePayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Code == nil {
			return nil, fmt.Errorf("%w: code", ErrMissingField)
		}
		return CodeChange{RoomID: string(p.RoomID), Code: *p.Code}, nil

	case TypeTyping:
		var p typingPayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		ev := Typing{RoomID: string(p.RoomID)}
		if p.UserName != nil {
			ev.UserName = normalize(*p.UserName)
		}
		return ev, nil

	case TypeLanguageChange:
		var p languageChangePayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Language == nil {
			return nil, fmt.Errorf("%w: language", ErrMissingField)
		}
		return LanguageChange{RoomID: string(p.RoomID), Language: *p.Language}, nil

	case TypeOutputChange:
		var p outputChangePayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Output == nil {
			return nil, fmt.Errorf("%w: output", ErrMissingField)
		}
		return OutputChange{RoomID: string(p.RoomID), Output: *p.Output}, nil

	case TypeInputChange:
		var p inputChangePayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Input == nil {
			return nil, fmt.Errorf("%w: input", ErrMissingField)
		}
		return InputChange{RoomID: string(p.RoomID), Input: *p.Input}, nil

	case TypeLeaveRoom:
		var p leaveRoomPayload
		if err := unmarshal(data, &p); err != nil {
			return nil, err
		}
		return LeaveRoom{RoomID: string(p.RoomID)}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, *env.Type)
	}
}

func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Encode serializes an outbound message.
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.MessageType(), err)
	}
	return data, nil
}
