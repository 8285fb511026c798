package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// codec encodes outgoing messages for one socket.
type codec struct {
	name        string
	messageType int
	marshal     func(v any) ([]byte, error)
}

var (
	jsonCodec    = codec{name: "json", messageType: websocket.TextMessage, marshal: json.Marshal}
	msgpackCodec = codec{name: "msgpack", messageType: websocket.BinaryMessage, marshal: msgpack.Marshal}
)

func codecByName(name string) (codec, error) {
	switch name {
	case "", "json":
		return jsonCodec, nil
	case "msgpack":
		return msgpackCodec, nil
	}
	return codec{}, fmt.Errorf("unsupported codec %q", name)
}

// frame is one encoded message, produced once per codec per broadcast.
type frame struct {
	messageType int
	data        []byte
}

// encodeAll encodes msg once for each codec in use.
func encodeAll(msg Message, codecs map[string]codec) (map[string]frame, error) {
	out := make(map[string]frame, len(codecs))
	for name, c := range codecs {
		b, err := c.marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = frame{messageType: c.messageType, data: b}
	}
	return out, nil
}
