package record

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/lumi-filter/internal/msgpack"
	"github.com/hugr-lab/lumi-filter/internal/serialize"
)

// FromValues converts a slice of Go values (structs or maps) to records.
// Struct fields are named by their json tags; nested structs become nested
// records.
func FromValues(values any) ([]Record, error) {
	data, err := msgpack.Encode(values)
	if err != nil {
		return nil, err
	}
	return DecodeMsgpack(data)
}

// DecodeMsgpack decodes a MessagePack array of maps.
// ZStandard-compressed payloads are decompressed first.
func DecodeMsgpack(data []byte) ([]Record, error) {
	data, err := serialize.Unpack(data)
	if err != nil {
		return nil, err
	}

	items, err := msgpack.DecodeSlice(data)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected map, got %T", i, item)
		}
		records[i] = normalize(m)
	}
	return records, nil
}

// EncodeMsgpack encodes records as a MessagePack array, optionally
// compressed with ZStandard.
func EncodeMsgpack(records []Record, compress bool) ([]byte, error) {
	data, err := msgpack.Encode(records)
	if err != nil {
		return nil, err
	}
	if !compress {
		return data, nil
	}
	return serialize.Pack(data)
}

// DecodeArrowIPC reads an Arrow IPC stream into records.
func DecodeArrowIPC(data []byte) ([]Record, error) {
	_, batches, err := serialize.ReadBatches(data, memory.DefaultAllocator)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, batch := range batches {
		records = append(records, FromArrow(batch)...)
		batch.Release()
	}
	return records, nil
}

// normalize converts nested map[string]any values to Record.
func normalize(m map[string]any) Record {
	r := Record(m)
	for k, v := range r {
		if nested, ok := v.(map[string]any); ok {
			r[k] = normalize(nested)
		}
	}
	return r
}
