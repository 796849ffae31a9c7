// relayprobe joins a relay room and prints every message it receives.
// Usage: go run ./cmd/relayprobe --url ws://localhost:5000/ws --room 42 --user probe
//
// With --code set, a codeChange is sent after joining so other members of
// the room can confirm they receive it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	url := flag.String("url", "ws://localhost:5000/ws", "relay WebSocket URL")
	roomID := flag.String("room", "1", "room to join")
	user := flag.String("user", "probe", "display name")
	code := flag.String("code", "", "code to send after joining")
	duration := flag.Duration("duration", 0, "exit after this long (0 runs until interrupted)")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, *duration)
		defer stop()
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, *url, nil)
	if err != nil {
		logger.Error("failed to connect", "url", *url, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	logger.Info("connected", "url", *url)

	send := func(v any) {
		data, err := json.Marshal(v)
		if err != nil {
			logger.Error("failed to encode message", "error", err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Error("failed to send message", "error", err)
		}
	}

	send(map[string]string{"type": "join", "roomId": *roomID, "userName": *user})
	if *code != "" {
		send(map[string]string{"type": "codeChange", "roomId": *roomID, "code": *code})
	}

	messages := make(chan []byte, 64)
	go func() {
		defer close(messages)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Warn("connection lost", "error", err)
				}
				return
			}
			messages <- data
		}
	}()

	counts := make(map[string]int)
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			send(map[string]string{"type": "leaveRoom", "roomId": *roomID})
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			printSummary(counts, time.Since(start))
			return

		case data, ok := <-messages:
			if !ok {
				printSummary(counts, time.Since(start))
				return
			}
			printMessage(data, counts, *verbose)
		}
	}
}

func printMessage(data []byte, counts map[string]int, verbose bool) {
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		fmt.Printf("[invalid] %s\n", data)
		counts["invalid"]++
		return
	}

	msgType, _ := msg["type"].(string)
	counts[msgType]++

	if verbose {
		fmt.Printf("[%s] %s\n", msgType, data)
		return
	}

	switch msgType {
	case "userJoined":
		fmt.Printf("[presence] %v\n", msg["users"])
	case "codeUpdate":
		fmt.Printf("[code] %d bytes\n", len(fmt.Sprint(msg["code"])))
	case "userTyping":
		fmt.Printf("[typing] %v\n", msg["user"])
	case "languageUpdate":
		fmt.Printf("[language] %v\n", msg["language"])
	case "outputUpdate":
		fmt.Printf("[output] %v\n", msg["output"])
	case "inputUpdate":
		fmt.Printf("[input] %v\n", msg["input"])
	default:
		fmt.Printf("[%s] %s\n", msgType, data)
	}
}

func printSummary(counts map[string]int, elapsed time.Duration) {
	fmt.Printf("\n--- %s ---\n", elapsed.Round(time.Second))
	for msgType, n := range counts {
		fmt.Printf("%-16s %d\n", msgType, n)
	}
}
