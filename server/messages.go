package server

import "github.com/brensch/snekarena/engine"

// Command is a message from a renderer.
//
//	{"type":"start","players":["human","ai"],"colors":["sky","random"],"map":"lake","speed":100}
//	{"type":"move","player":0,"dir":"up"}
//	{"type":"pause"} {"type":"reset"} {"type":"speed","speed":50}
type Command struct {
	Type    string   `json:"type"`
	Players []string `json:"players,omitempty"`
	Colors  []string `json:"colors,omitempty"`
	Map     string   `json:"map,omitempty"`
	Speed   int      `json:"speed,omitempty"`
	Player  int      `json:"player,omitempty"`
	Dir     string   `json:"dir,omitempty"`
}

// Outgoing message types.
const (
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// Message is pushed to renderers after every tick and every command.
type Message struct {
	Type     string           `json:"type" msgpack:"type"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Tick     *TickEvent       `json:"tick,omitempty" msgpack:"tick,omitempty"`
	Error    string           `json:"error,omitempty" msgpack:"error,omitempty"`
}

// TickEvent carries what changed on the tick that produced a snapshot.
type TickEvent struct {
	Turn       int   `json:"turn" msgpack:"turn"`
	Ate        []int `json:"ate,omitempty" msgpack:"ate,omitempty"`
	Eliminated []int `json:"eliminated,omitempty" msgpack:"eliminated,omitempty"`
	FoodPlaced int   `json:"foodPlaced" msgpack:"foodPlaced"`
	Over       bool  `json:"over" msgpack:"over"`
	Winner     int   `json:"winner" msgpack:"winner"`
}

func snapshotMessage(u engine.Update) Message {
	snap := u.Snapshot
	msg := Message{Type: TypeSnapshot, Snapshot: &snap}
	if r := u.Result; r != nil {
		msg.Tick = &TickEvent{
			Turn:       r.Turn,
			Ate:        r.Ate,
			Eliminated: r.Eliminated,
			FoodPlaced: r.FoodPlaced,
			Over:       r.Over,
			Winner:     r.Winner,
		}
	}
	return msg
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Error: err.Error()}
}
