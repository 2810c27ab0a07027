package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/capkit/capkit/pkg/descriptor"
	"github.com/capkit/capkit/pkg/dispatch"
	"github.com/capkit/capkit/pkg/logging"
	"github.com/capkit/capkit/pkg/registry"
)

// BenchmarkDispatchOperations benchmarks various dispatch paths
func BenchmarkDispatchOperations(b *testing.B) {
	b.Run("Dispatch", func(b *testing.B) {
		benchmarkDispatch(b)
	})

	b.Run("DispatchValidationFailure", func(b *testing.B) {
		benchmarkDispatchValidationFailure(b)
	})

	b.Run("DispatchNotFound", func(b *testing.B) {
		benchmarkDispatchNotFound(b)
	})

	b.Run("DispatchWithMiddleware", func(b *testing.B) {
		benchmarkDispatchWithMiddleware(b)
	})

	b.Run("DispatchAll/10", func(b *testing.B) {
		benchmarkDispatchAll(b, 10)
	})

	b.Run("DispatchAll/100", func(b *testing.B) {
		benchmarkDispatchAll(b, 100)
	})

	b.Run("ConcurrentDispatch/10", func(b *testing.B) {
		benchmarkConcurrentDispatch(b, 10)
	})

	b.Run("ConcurrentDispatch/100", func(b *testing.B) {
		benchmarkConcurrentDispatch(b, 100)
	})
}

// BenchmarkRegistryOperations benchmarks registration and lookup
func BenchmarkRegistryOperations(b *testing.B) {
	b.Run("Register", func(b *testing.B) {
		benchmarkRegister(b)
	})

	b.Run("Lookup", func(b *testing.B) {
		benchmarkLookup(b, 100)
	})

	b.Run("Descriptions/100", func(b *testing.B) {
		benchmarkDescriptions(b, 100)
	})
}

// BenchmarkDescriptorValidate benchmarks value validation
func BenchmarkDescriptorValidate(b *testing.B) {
	b.Run("String", func(b *testing.B) {
		benchmarkValidate(b, descriptor.String(), "hello")
	})

	b.Run("Sequence", func(b *testing.B) {
		benchmarkValidate(b, descriptor.Sequence(descriptor.Integer()),
			[]interface{}{1, 2, 3, 4, 5, 6, 7, 8})
	})

	b.Run("Object", func(b *testing.B) {
		benchmarkValidate(b,
			descriptor.Object(
				descriptor.Field{Name: "id", Descriptor: descriptor.Integer()},
				descriptor.Field{Name: "name", Descriptor: descriptor.String()},
				descriptor.Field{Name: "tags", Descriptor: descriptor.Sequence(descriptor.String())},
			),
			map[string]interface{}{
				"id":   42,
				"name": "widget",
				"tags": []interface{}{"a", "b"},
			})
	})
}

func createBenchDispatcher(b *testing.B, opts ...dispatch.Option) *dispatch.Dispatcher {
	b.Helper()

	reg := registry.New()
	if err := reg.RegisterFunc(
		"add",
		"Adds two whole numbers.",
		[]registry.Parameter{
			{Name: "a", Descriptor: descriptor.Integer()},
			{Name: "b", Descriptor: descriptor.Integer()},
		},
		descriptor.Integer(),
		func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return args["a"].(int) + args["b"].(int), nil
		},
	); err != nil {
		b.Fatal(err)
	}

	return dispatch.New(reg, opts...)
}

func benchmarkDispatch(b *testing.B) {
	ctx := context.Background()
	d := createBenchDispatcher(b)
	args := map[string]interface{}{"a": 2, "b": 3}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		result := d.Dispatch(ctx, "add", args)
		if !result.OK {
			b.Fatalf("dispatch failed: %s", result.Message)
		}
	}
}

func benchmarkDispatchValidationFailure(b *testing.B) {
	ctx := context.Background()
	d := createBenchDispatcher(b)
	args := map[string]interface{}{"a": 2}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		result := d.Dispatch(ctx, "add", args)
		if result.OK {
			b.Fatal("expected validation failure")
		}
	}
}

func benchmarkDispatchNotFound(b *testing.B) {
	ctx := context.Background()
	d := createBenchDispatcher(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		result := d.Dispatch(ctx, "missing", nil)
		if result.OK {
			b.Fatal("expected not found")
		}
	}
}

func benchmarkDispatchWithMiddleware(b *testing.B) {
	ctx := context.Background()
	logger := logging.NewNop()
	d := createBenchDispatcher(b, dispatch.WithMiddleware(dispatch.LoggingMiddleware(logger)))
	args := map[string]interface{}{"a": 2, "b": 3}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		result := d.Dispatch(ctx, "add", args)
		if !result.OK {
			b.Fatalf("dispatch failed: %s", result.Message)
		}
	}
}

func benchmarkDispatchAll(b *testing.B, batchSize int) {
	ctx := context.Background()
	d := createBenchDispatcher(b, dispatch.WithConcurrencyLimit(8))

	calls := make([]dispatch.Call, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		calls = append(calls, dispatch.Call{
			Name:      "add",
			Arguments: map[string]interface{}{"a": i, "b": i},
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		results := d.DispatchAll(ctx, calls)
		if len(results) != batchSize {
			b.Fatalf("expected %d results, got %d", batchSize, len(results))
		}
	}
}

func benchmarkConcurrentDispatch(b *testing.B, goroutines int) {
	ctx := context.Background()
	d := createBenchDispatcher(b)
	args := map[string]interface{}{"a": 2, "b": 3}

	b.ResetTimer()
	b.ReportAllocs()

	b.SetParallelism(goroutines)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			result := d.Dispatch(ctx, "add", args)
			if !result.OK {
				b.Fatalf("dispatch failed: %s", result.Message)
			}
		}
	})
}

func benchmarkRegister(b *testing.B) {
	body := func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		reg := registry.New()
		if err := reg.RegisterFunc(fmt.Sprintf("cap-%d", i), "", nil, descriptor.String(), body); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkLookup(b *testing.B, size int) {
	reg := populateRegistry(b, size)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := reg.Lookup(fmt.Sprintf("cap-%d", i%size)); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDescriptions(b *testing.B, size int) {
	reg := populateRegistry(b, size)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if len(reg.Descriptions()) != size {
			b.Fatal("unexpected description count")
		}
	}
}

func benchmarkValidate(b *testing.B, d *descriptor.Descriptor, value interface{}) {
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := d.Validate(value); err != nil {
			b.Fatal(err)
		}
	}
}

func populateRegistry(b *testing.B, size int) *registry.Registry {
	b.Helper()

	reg := registry.New()
	for i := 0; i < size; i++ {
		if err := reg.RegisterFunc(
			fmt.Sprintf("cap-%d", i),
			"Benchmark capability.",
			[]registry.Parameter{{Name: "x", Descriptor: descriptor.Integer()}},
			descriptor.Integer(),
			func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return args["x"], nil
			},
		); err != nil {
			b.Fatal(err)
		}
	}
	return reg
}
