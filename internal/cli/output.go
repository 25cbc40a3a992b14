package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		for _, p := range v {
			o.printPlayer(p)
		}
	case Room:
		o.printRoom(v)
	case []RoomSummary:
		o.printRoomList(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Name)
	fmt.Printf("  Token: %s\n", p.ID)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s (%s)\n", r.Name, r.ID)
	fmt.Printf("  Phase: %s\n", r.Phase)
	fmt.Printf("  Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		marker := ""
		if p.ID == r.Owner {
			marker = " (owner)"
		}
		fmt.Printf("    - %s%s\n", p.Name, marker)
	}
}

func (o *Output) printRoomList(rooms []RoomSummary) {
	if len(rooms) == 0 {
		fmt.Println("No rooms")
		return
	}
	for _, r := range rooms {
		fmt.Printf("%s  %s  %s  %d players\n", r.ID, r.Name, r.Phase, r.PlayerCount)
	}
}

// Player response type (matches API)
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room response type
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Phase     string    `json:"phase"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomSummary response type
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phase       string `json:"phase"`
	PlayerCount int    `json:"player_count"`
}

// JoinResult response type
type JoinResult struct {
	Room string `json:"room"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}
