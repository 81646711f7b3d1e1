package vtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdlibIndex(t *testing.T) {
	var std stdlibIndex
	std.addModule("demo")
	std.addModule("example.com/testmod")
	std.addModule("demo")
	assert.Len(t, std.modules, 2)

	tests := []struct {
		path string
		want bool
	}{
		{"fmt", true},
		{"io/fs", true},
		{"builtin", true},
		{"demo", false},
		{"demo/internal/shapes", false},
		{"demonstration", true},
		{"example.com/testmod/sub", false},
		{"github.com/other/mod", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, std.contains(tt.path))
		})
	}
}

func TestParseShow(t *testing.T) {
	tests := []struct {
		in      string
		want    Show
		wantErr bool
	}{
		{in: "", want: ShowAll},
		{in: "all", want: ShowAll},
		{in: "Inherited", want: ShowInherited},
		{in: "overrides", want: ShowOverrides},
		{in: "promoted", want: ShowAll, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShow(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown show mode")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Stdlib(t *testing.T) {
	res := sampleResult()
	res.Interfaces[0].Stdlib = true

	assert.Empty(t, Filter(res, Options{}).Relations)
	assert.Len(t, Filter(res, Options{IncludeStdlib: true}).Relations, 2)
}

func TestFilter_Show(t *testing.T) {
	// Derived has a promoted Kill and a Display overriding Base.
	got := Filter(sampleResult(), Options{Show: ShowInherited})
	require.Len(t, got.Relations, 1)
	assert.Equal(t, "Derived", got.Relations[0].Type.Name)

	got = Filter(sampleResult(), Options{Show: ShowOverrides})
	require.Len(t, got.Relations, 1)
	assert.Equal(t, "Derived", got.Relations[0].Type.Name)
	assert.Len(t, got.Types, 1)
	assert.Len(t, got.Interfaces, 1)
}

func TestIsUnexported(t *testing.T) {
	assert.True(t, isUnexported(""))
	assert.True(t, isUnexported("walker"))
	assert.False(t, isUnexported("error"))
	assert.False(t, isUnexported("Entity"))
}

func TestFilter_PrunesOrphans(t *testing.T) {
	res := sampleResult()
	res.Types = append(res.Types, TypeDef{Name: "Orphan", PkgPath: "example.com/shapes", PkgName: "shapes"})
	res.Interfaces = append(res.Interfaces, InterfaceDef{Name: "Unused", PkgPath: "example.com/shapes", PkgName: "shapes"})

	got := Filter(res, Options{})

	assert.Len(t, got.Relations, 2)
	assert.Len(t, got.Types, 2)
	assert.Len(t, got.Interfaces, 1)
	assert.Equal(t, "Entity", got.Interfaces[0].Name)
}
