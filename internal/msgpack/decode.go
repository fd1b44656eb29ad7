// Package msgpack provides MessagePack encoding/decoding for records and
// request parameters.
// Struct fields are named by their json tags so that Go values, JSON
// payloads and records share one naming.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// StructTag is the struct tag used for field names.
const StructTag = "json"

// Decode deserializes MessagePack data into a Go value.
// The v parameter should be a pointer to the target structure.
//
// Example:
//
//	type User struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	var users []User
//	err := msgpack.Decode(data, &users)
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty MessagePack data")
	}

	if err := newDecoder(data).Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	return nil
}

// Encode serializes a Go value into MessagePack format.
// Returns the serialized bytes or error.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(StructTag)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeMap deserializes MessagePack data into a map[string]any.
// This is useful when the structure is not known at compile time.
func DecodeMap(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty MessagePack data")
	}

	var result map[string]any
	if err := newDecoder(data).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack map: %w", err)
	}

	return result, nil
}

// DecodeSlice deserializes MessagePack data into a []any.
// Elements that are maps decode as map[string]any.
func DecodeSlice(data []byte) ([]any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty MessagePack data")
	}

	var result []any
	if err := newDecoder(data).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack slice: %w", err)
	}

	return result, nil
}

// newDecoder returns a decoder that widens integers to int64/uint64 and
// floats to float64 when decoding into interfaces.
func newDecoder(data []byte) *msgpack.Decoder {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(StructTag)
	dec.UseLooseInterfaceDecoding(true)
	return dec
}
