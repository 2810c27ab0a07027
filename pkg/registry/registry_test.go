package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capkit/capkit/pkg/descriptor"
	caperrors "github.com/capkit/capkit/pkg/errors"
)

func echoBody(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return args["text"], nil
}

func echoParams() []Parameter {
	return []Parameter{{Name: "text", Descriptor: descriptor.String()}}
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()

	err := reg.RegisterFunc("echo", "Echo the input.", echoParams(), descriptor.String(), echoBody)
	require.NoError(t, err)

	entry, err := reg.Lookup("echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", entry.Name())

	assert.True(t, reg.Has("echo"))
	assert.Equal(t, 1, reg.Len())
}

func TestLookupNotFound(t *testing.T) {
	reg := New()

	_, err := reg.Lookup("missing")
	require.Error(t, err)
	assert.True(t, caperrors.IsKind(err, caperrors.KindNotFound))
	assert.False(t, reg.Has("missing"))
}

func TestDuplicateRegistrationRetainsFirst(t *testing.T) {
	reg := New()

	first := MustNewEntry("echo", "first", echoParams(), descriptor.String(), echoBody)
	second := MustNewEntry("echo", "second", echoParams(), descriptor.String(), echoBody)

	require.NoError(t, reg.Register(first))

	err := reg.Register(second)
	require.Error(t, err)
	assert.True(t, caperrors.IsKind(err, caperrors.KindDuplicateName))

	entry, err := reg.Lookup("echo")
	require.NoError(t, err)
	assert.Equal(t, "first", entry.Doc(), "registry must retain the first registration")
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterNilEntry(t *testing.T) {
	reg := New()

	err := reg.Register(nil)
	require.Error(t, err)
	assert.True(t, caperrors.IsKind(err, caperrors.KindInvalidEntry))
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := New()
	entry := MustNewEntry("echo", "", echoParams(), descriptor.String(), echoBody)

	reg.MustRegister(entry)
	assert.Panics(t, func() {
		reg.MustRegister(MustNewEntry("echo", "", echoParams(), descriptor.String(), echoBody))
	})
}

func TestEnumerationOrder(t *testing.T) {
	reg := New()
	names := []string{"zeta", "alpha", "mid", "beta"}

	for _, name := range names {
		require.NoError(t, reg.RegisterFunc(name, "", echoParams(), descriptor.String(), echoBody))
	}

	var listed []string
	for _, entry := range reg.List() {
		listed = append(listed, entry.Name())
	}
	assert.Equal(t, names, listed, "enumeration must follow registration order, not name order")
}

func TestEnumerationIdempotent(t *testing.T) {
	reg := New()
	for i := 0; i < 5; i++ {
		require.NoError(t, reg.RegisterFunc(fmt.Sprintf("cap%d", i), "", echoParams(), descriptor.String(), echoBody))
	}

	collect := func() []string {
		var names []string
		for entry := range reg.All() {
			names = append(names, entry.Name())
		}
		return names
	}

	first := collect()
	second := collect()
	assert.Equal(t, first, second, "repeated enumeration with no intervening register must be identical")
}

func TestAllIsRestartableAndStoppable(t *testing.T) {
	reg := New()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.RegisterFunc(name, "", echoParams(), descriptor.String(), echoBody))
	}

	// Early break
	var seen []string
	for entry := range reg.All() {
		seen = append(seen, entry.Name())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)

	// Restart yields the full sequence again
	seen = nil
	for entry := range reg.All() {
		seen = append(seen, entry.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestDescriptions(t *testing.T) {
	reg := New()

	require.NoError(t, reg.RegisterFunc(
		"hello",
		"Say hello to someone.",
		[]Parameter{{Name: "name", Descriptor: descriptor.String(), HasDefault: true, Default: "World"}},
		descriptor.String(),
		func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return fmt.Sprintf("Hello, %s!", args["name"]), nil
		},
	))
	require.NoError(t, reg.RegisterFunc(
		"add",
		"Add two integers.",
		[]Parameter{
			{Name: "a", Descriptor: descriptor.Integer()},
			{Name: "b", Descriptor: descriptor.Integer()},
		},
		descriptor.Integer(),
		func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return 0, nil
		},
	))

	descs := reg.Descriptions()
	require.Len(t, descs, 2)

	hello := descs[0]
	assert.Equal(t, "hello", hello.Name)
	assert.Equal(t, "Say hello to someone.", hello.Doc)
	assert.Equal(t, "string", hello.Returns)
	require.Len(t, hello.Parameters, 1)
	assert.Equal(t, "name", hello.Parameters[0].Name)
	assert.False(t, hello.Parameters[0].Required)
	assert.Equal(t, "World", hello.Parameters[0].Default)
	require.NotNil(t, hello.InputSchema)
	assert.Equal(t, "object", hello.InputSchema.Type)

	add := descs[1]
	assert.Equal(t, "add", add.Name)
	require.Len(t, add.Parameters, 2)
	assert.True(t, add.Parameters[0].Required)
	assert.Nil(t, add.Parameters[0].Default)
}

func TestConcurrentLookupAndEnumeration(t *testing.T) {
	reg := New()
	for i := 0; i < 20; i++ {
		require.NoError(t, reg.RegisterFunc(fmt.Sprintf("cap%d", i), "", echoParams(), descriptor.String(), echoBody))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				name := fmt.Sprintf("cap%d", (n+j)%20)
				entry, err := reg.Lookup(name)
				assert.NoError(t, err)
				assert.Equal(t, name, entry.Name())

				assert.Len(t, reg.List(), 20)
			}
		}(i)
	}
	wg.Wait()
}
