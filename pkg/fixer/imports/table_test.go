package imports

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/parser/phplex"
	"github.com/yaklabco/gophpfix/pkg/phptok"
)

func collect(t *testing.T, src string) (*Table, phptok.Sequence) {
	t.Helper()
	snap, err := phplex.New().Tokenize(context.Background(), "test.php", []byte(src))
	require.NoError(t, err)
	return Collect(snap.Tokens), snap.Tokens
}

func TestCollectSimpleUse(t *testing.T) {
	table, _ := collect(t, "<?php\nnamespace App;\n\nuse Vendor\\Http\\Client;\nuse Other\\Thing as Gadget;\n")

	b, ok := table.Lookup("Client")
	require.True(t, ok)
	assert.Equal(t, "Vendor\\Http\\Client", b.FQN)

	b, ok = table.Lookup("Gadget")
	require.True(t, ok)
	assert.Equal(t, "Other\\Thing", b.FQN)

	_, ok = table.Lookup("Thing")
	assert.False(t, ok, "aliased imports bind only the alias")

	// Lookups are case-insensitive like PHP class resolution.
	b, ok = table.Lookup("client")
	require.True(t, ok)
	assert.Equal(t, "Client", b.Short)
}

func TestCollectGroupedUse(t *testing.T) {
	table, _ := collect(t, "<?php\nuse App\\Support\\{Clock, Timer as Stopwatch};\n")

	b, ok := table.Lookup("Clock")
	require.True(t, ok)
	assert.Equal(t, "App\\Support\\Clock", b.FQN)

	b, ok = table.Lookup("Stopwatch")
	require.True(t, ok)
	assert.Equal(t, "App\\Support\\Timer", b.FQN)
}

func TestCollectIgnoresNonClassImports(t *testing.T) {
	src := "<?php\n" +
		"use function App\\helpers\\dump;\n" +
		"use const App\\VERSION;\n" +
		"class C {\n    use SomeTrait;\n}\n" +
		"$f = function () use ($x) {};\n"
	table, _ := collect(t, src)

	_, ok := table.Lookup("dump")
	assert.False(t, ok)
	_, ok = table.Lookup("VERSION")
	assert.False(t, ok)
	_, ok = table.Lookup("SomeTrait")
	assert.False(t, ok, "trait uses inside class bodies are not imports")
	_, ok = table.Lookup("x")
	assert.False(t, ok)
}

func TestBindCollision(t *testing.T) {
	table, _ := collect(t, "<?php\nuse Other\\Client;\n")

	// Same FQN as the existing binding: allowed.
	assert.True(t, table.Bind("Client", "Other\\Client"))
	// Different FQN behind the same short name: refused.
	assert.False(t, table.Bind("Client", "Vendor\\Client"))
	assert.False(t, table.Bind("client", "Vendor\\Client"), "collision check is case-insensitive")

	// Fresh short names bind and repeat bindings stay consistent.
	assert.True(t, table.Bind("Widget", "\\Vendor\\Widget"))
	assert.True(t, table.Bind("Widget", "Vendor\\Widget"))
	assert.False(t, table.Bind("Widget", "Elsewhere\\Widget"))
}

func TestPlannedOrder(t *testing.T) {
	table, _ := collect(t, "<?php\n")

	require.True(t, table.Bind("Beta", "V\\Beta"))
	require.True(t, table.Bind("Alpha", "V\\Alpha"))
	require.True(t, table.Bind("Beta", "V\\Beta"))

	planned := table.Planned()
	require.Len(t, planned, 2)
	assert.Equal(t, "Beta", planned[0].Short, "planned bindings keep first-discovery order")
	assert.Equal(t, "Alpha", planned[1].Short)
	assert.True(t, table.HasPlanned())
}

func TestInsertionPoint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // text of the token just before the insertion point
	}{
		{
			name: "after last use",
			src:  "<?php\nnamespace App;\nuse V\\A;\nuse V\\B;\n",
			want: ";",
		},
		{
			name: "after namespace",
			src:  "<?php\nnamespace App;\n",
			want: ";",
		},
		{
			name: "after open tag",
			src:  "<?php\n$x = 1;\n",
			want: "<?php",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, seq := collect(t, tt.src)
			p := table.InsertionPoint()
			require.Greater(t, p, 0)
			assert.Equal(t, tt.want, seq[p-1].Text)

			// The prefix up to the anchor holds every existing use statement.
			prefix := string(phptok.Render(seq[:p]))
			assert.Equal(t, strings.Count(tt.src, "use "), strings.Count(prefix, "use "))
		})
	}
}

func TestInsertionPointNoPHP(t *testing.T) {
	table, _ := collect(t, "just html, no php")
	assert.Equal(t, -1, table.InsertionPoint())
}

func TestShortFor(t *testing.T) {
	table, _ := collect(t, "<?php\nuse Vendor\\Http\\Client;\n")

	short, ok := table.ShortFor("Vendor\\Http\\Client")
	require.True(t, ok)
	assert.Equal(t, "Client", short)

	short, ok = table.ShortFor("\\vendor\\http\\client")
	require.True(t, ok)
	assert.Equal(t, "Client", short)

	_, ok = table.ShortFor("Missing\\Name")
	assert.False(t, ok)
}

func TestReservedTypeName(t *testing.T) {
	for _, name := range []string{"int", "String", "self", "PARENT", "static", "mixed", "never"} {
		assert.True(t, ReservedTypeName(name), name)
	}
	for _, name := range []string{"Client", "DateTime", "Exception"} {
		assert.False(t, ReservedTypeName(name), name)
	}
}
