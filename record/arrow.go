package record

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/shopspring/decimal"
)

// FromArrow converts a record batch to records.
// Struct columns become nested records, list columns become []any and
// extension columns are read through their storage array.
func FromArrow(batch arrow.RecordBatch) []Record {
	if batch == nil {
		return nil
	}

	schema := batch.Schema()
	rows := int(batch.NumRows())
	records := make([]Record, rows)
	for i := range records {
		records[i] = make(Record, schema.NumFields())
	}

	for c := 0; c < schema.NumFields(); c++ {
		name := schema.Field(c).Name
		col := batch.Column(c)
		for i := 0; i < rows; i++ {
			records[i][name] = ArrowValue(col, i)
		}
	}
	return records
}

// FromReader drains reader, converts every batch and releases the reader.
func FromReader(reader array.RecordReader) ([]Record, error) {
	defer reader.Release()

	var records []Record
	for reader.Next() {
		records = append(records, FromArrow(reader.RecordBatch())...)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record batches: %w", err)
	}
	return records, nil
}

// ArrowValue returns the Go value at row i of arr. Nulls are nil.
// Strings and byte slices are copied out of the Arrow buffers.
func ArrowValue(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}

	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return uint64(a.Value(i))
	case *array.Uint16:
		return uint64(a.Value(i))
	case *array.Uint32:
		return uint64(a.Value(i))
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return strings.Clone(a.Value(i))
	case *array.LargeString:
		return strings.Clone(a.Value(i))
	case *array.Binary:
		return bytes.Clone(a.Value(i))
	case *array.LargeBinary:
		return bytes.Clone(a.Value(i))
	case *array.Decimal128:
		dt := a.DataType().(*arrow.Decimal128Type)
		return decimal.NewFromBigInt(a.Value(i).BigInt(), -dt.Scale)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	case *array.Timestamp:
		dt := a.DataType().(*arrow.TimestampType)
		return a.Value(i).ToTime(dt.Unit)
	case *array.Struct:
		st := a.DataType().(*arrow.StructType)
		nested := make(Record, st.NumFields())
		for f := 0; f < st.NumFields(); f++ {
			nested[st.Field(f).Name] = ArrowValue(a.Field(f), i)
		}
		return nested
	case *array.List:
		start, end := a.ValueOffsets(i)
		values := a.ListValues()
		items := make([]any, 0, end-start)
		for j := start; j < end; j++ {
			items = append(items, ArrowValue(values, int(j)))
		}
		return items
	case array.ExtensionArray:
		return ArrowValue(a.Storage(), i)
	default:
		return arr.ValueStr(i)
	}
}
