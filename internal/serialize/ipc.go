// Package serialize provides record batch serialization to Arrow IPC format
// and ZStandard compression for packed record payloads.
package serialize

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// WriteBatches serializes record batches to an Arrow IPC stream.
// All batches must share schema. Buffers are compressed with ZStandard.
func WriteBatches(schema *arrow.Schema, batches []arrow.RecordBatch, allocator memory.Allocator) ([]byte, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf,
		ipc.WithSchema(schema),
		ipc.WithAllocator(allocator),
		ipc.WithZstd(),
	)
	defer writer.Close()

	for _, batch := range batches {
		if err := writer.Write(batch); err != nil {
			return nil, fmt.Errorf("failed to write IPC record: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close IPC writer: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadBatches deserializes an Arrow IPC stream.
// The caller owns the returned batches and must release them.
func ReadBatches(data []byte, allocator memory.Allocator) (*arrow.Schema, []arrow.RecordBatch, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty IPC data")
	}
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(allocator))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open IPC reader: %w", err)
	}
	defer reader.Release()

	var batches []arrow.RecordBatch
	for reader.Next() {
		batch := reader.RecordBatch()
		batch.Retain()
		batches = append(batches, batch)
	}
	if err := reader.Err(); err != nil {
		for _, b := range batches {
			b.Release()
		}
		return nil, nil, fmt.Errorf("failed to read IPC record: %w", err)
	}

	return reader.Schema(), batches, nil
}
