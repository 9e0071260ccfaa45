package serialization

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec is the pluggable encoding stage of the pipeline.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// JSONCodec encodes with encoding/json. Human-readable, handy when traces
// are inspected by hand.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (c *JSONCodec) Name() string {
	return "json"
}

// MsgPackCodec encodes with MessagePack, the compact default for storage.
type MsgPackCodec struct{}

func (c *MsgPackCodec) Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c *MsgPackCodec) Decode(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

func (c *MsgPackCodec) Name() string {
	return "msgpack"
}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() Codec {
	return &JSONCodec{}
}

// NewMsgPackCodec creates a new MessagePack codec
func NewMsgPackCodec() Codec {
	return &MsgPackCodec{}
}
