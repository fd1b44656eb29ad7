package serialize

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/klauspost/compress/zstd"
)

func TestPackUnpack(t *testing.T) {
	data := bytes.Repeat([]byte(`{"name":"John Doe","age":25}`), 50)

	packed, err := Pack(data)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !IsCompressed(packed) {
		t.Fatal("expected zstd frame header")
	}
	if len(packed) >= len(data) {
		t.Errorf("expected compression, got %d >= %d bytes", len(packed), len(data))
	}

	unpacked, err := Unpack(packed)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !bytes.Equal(unpacked, data) {
		t.Error("round trip mismatch")
	}
}

func TestUnpackPlain(t *testing.T) {
	data := []byte("plain")
	got, err := Unpack(data)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected data unchanged, got %q", got)
	}
}

func TestCompressEmpty(t *testing.T) {
	c, err := NewCompressor(zstd.SpeedFastest)
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}
	defer c.Close()

	if out := c.Compress(nil); len(out) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(out))
	}
}

func TestWriteReadBatches(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	builder.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	builder.Field(1).(*array.StringBuilder).AppendValues([]string{"a", "", "c"}, []bool{true, false, true})
	batch := builder.NewRecordBatch()
	defer batch.Release()

	data, err := WriteBatches(schema, []arrow.RecordBatch{batch}, nil)
	if err != nil {
		t.Fatalf("WriteBatches failed: %v", err)
	}

	gotSchema, batches, err := ReadBatches(data, nil)
	if err != nil {
		t.Fatalf("ReadBatches failed: %v", err)
	}
	defer func() {
		for _, b := range batches {
			b.Release()
		}
	}()

	if !gotSchema.Equal(schema) {
		t.Errorf("expected schema %s, got %s", schema, gotSchema)
	}
	if len(batches) != 1 || batches[0].NumRows() != 3 {
		t.Fatalf("expected one batch of 3 rows, got %d batches", len(batches))
	}
	if !batches[0].Column(1).IsNull(1) {
		t.Error("expected null to survive round trip")
	}
}

func TestReadBatchesEmpty(t *testing.T) {
	if _, _, err := ReadBatches(nil, nil); err == nil {
		t.Error("expected error for empty data")
	}
}
