package lumi

import (
	"slices"
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	lumimem "github.com/hugr-lab/lumi-filter/backend/memory"
	"github.com/hugr-lab/lumi-filter/internal/serialize"
	"github.com/hugr-lab/lumi-filter/record"
	"github.com/hugr-lab/lumi-filter/schema"
)

var peopleArrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "age", Type: arrow.PrimitiveTypes.Int64},
	{Name: "profile", Type: arrow.StructOf(
		arrow.Field{Name: "age", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
	), Nullable: true},
}, nil)

func buildPeopleBatch(alloc memory.Allocator) arrow.RecordBatch {
	builder := array.NewRecordBuilder(alloc, peopleArrowSchema)
	defer builder.Release()

	builder.Field(0).(*array.StringBuilder).AppendValues([]string{"John Doe", "Jane Smith", "Bob Stone"}, nil)
	builder.Field(1).(*array.Int64Builder).AppendValues([]int64{25, 30, 35}, nil)

	sb := builder.Field(2).(*array.StructBuilder)
	ab := sb.FieldBuilder(0).(*array.Int32Builder)
	sb.Append(true)
	ab.Append(25)
	sb.Append(true)
	ab.AppendNull()
	sb.AppendNull()

	return builder.NewRecordBatch()
}

// TestMemoryLeaks uses memory.NewCheckedAllocator to detect memory leaks.
// This test ensures that all Arrow objects are properly released.
func TestMemoryLeaks(t *testing.T) {
	allocator := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer allocator.AssertSize(t, 0)

	s, err := NewSchemaBuilder(Config{}).
		Introspect(schema.FromArrow(peopleArrowSchema)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	t.Run("BatchToRecords", func(t *testing.T) {
		batch := buildPeopleBatch(allocator)
		data := lumimem.FromArrow(batch)
		batch.Release()

		got := names(NewRequest(s, data, Params{"profile.age__gte": "21"}).Filter().Result().Records())
		if !slices.Equal(got, []string{"John Doe"}) {
			t.Errorf("expected [John Doe], got %v", got)
		}
	})

	t.Run("IPCRoundTrip", func(t *testing.T) {
		batch := buildPeopleBatch(allocator)
		payload, err := serialize.WriteBatches(peopleArrowSchema, []arrow.RecordBatch{batch}, allocator)
		batch.Release()
		if err != nil {
			t.Fatalf("WriteBatches failed: %v", err)
		}

		_, batches, err := serialize.ReadBatches(payload, allocator)
		if err != nil {
			t.Fatalf("ReadBatches failed: %v", err)
		}
		var records []record.Record
		for _, b := range batches {
			records = append(records, record.FromArrow(b)...)
			b.Release()
		}

		got := names(NewRequest(s, lumimem.New(records), Params{"ordering": "-age"}).Order().Result().Records())
		expected := []string{"Bob Stone", "Jane Smith", "John Doe"}
		if !slices.Equal(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("Reader", func(t *testing.T) {
		batch := buildPeopleBatch(allocator)
		reader, err := array.NewRecordReader(peopleArrowSchema, []arrow.RecordBatch{batch})
		batch.Release()
		if err != nil {
			t.Fatalf("NewRecordReader failed: %v", err)
		}

		records, err := record.FromReader(reader)
		if err != nil {
			t.Fatalf("FromReader failed: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("expected 3 records, got %d", len(records))
		}
	})
}

// TestConcurrentRequests shares one schema between concurrent requests.
func TestConcurrentRequests(t *testing.T) {
	s := peopleSchema(t, Config{})
	records := []record.Record{
		{"name": "a", "age": 20},
		{"name": "b", "age": 30},
		{"name": "c", "age": 40},
	}

	params := []Params{
		{"age__gte": "30"},
		{"age__lt": "30"},
		{"name__in": "b", "ordering": "-age"},
		{"ordering": "-name"},
	}
	expected := [][]string{
		{"b", "c"},
		{"a"},
		{"b"},
		{"c", "b", "a"},
	}

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for i := 0; i < 25; i++ {
		for j := range params {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				got := run(s, records, params[j])
				if !slices.Equal(got, expected[j]) {
					errs <- params[j].Values().Encode()
				}
			}(j)
		}
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Errorf("unexpected result for %s", e)
	}
	if names(records) == nil || records[0]["name"] != "a" {
		t.Error("input records were modified")
	}
}
