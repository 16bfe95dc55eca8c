package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func parse(t *testing.T, src string) hcl.Body {
	t.Helper()
	f, diags := hclparse.NewParser().ParseHCL([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	return f.Body
}

var schema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "pipeline"}, {Type: "sample", LabelNames: []string{"id"}}},
}

func TestFindUniqueBlock(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		content, diags := parse(t, "pipeline {}\nsample \"a\" {}\n").Content(schema)
		require.False(t, diags.HasErrors())

		b, diags := FindUniqueBlock(content.Blocks, "pipeline")
		assert.Empty(t, diags)
		require.NotNil(t, b)
		assert.Equal(t, "pipeline", b.Type)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		content, _ := parse(t, "sample \"a\" {}\n").Content(schema)

		b, diags := FindUniqueBlock(content.Blocks, "pipeline")
		assert.Nil(t, b)
		assert.Empty(t, diags)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		content, _ := parse(t, "pipeline {}\npipeline {}\npipeline {}\n").Content(schema)

		b, diags := FindUniqueBlock(content.Blocks, "pipeline")
		require.NotNil(t, b)
		assert.Equal(t, 1, b.DefRange.Start.Line, "the first block wins")
		require.Len(t, diags, 2)
		assert.Equal(t, `Duplicate "pipeline" block`, diags[0].Summary)
		assert.Equal(t, 2, diags[0].Subject.Start.Line)
		assert.Equal(t, 3, diags[1].Subject.Start.Line)
		assert.Contains(t, diags[0].Detail, "test.hcl:1")
	})
}

func TestBlocksOfType(t *testing.T) {
	t.Parallel()
	content, _ := parse(t, "sample \"a\" {}\npipeline {}\nsample \"b\" {}\n").Content(schema)

	samples := BlocksOfType(content.Blocks, "sample")
	require.Len(t, samples, 2)
	assert.Equal(t, []string{"a"}, samples[0].Labels)
	assert.Equal(t, []string{"b"}, samples[1].Labels)
}

type optionalAttrs struct {
	Name  hcl.Expression `hcl:"name,optional"`
	Count hcl.Expression `hcl:"count,optional"`
}

func TestDecodeOptional(t *testing.T) {
	t.Parallel()

	var attrs optionalAttrs
	diags := gohcl.DecodeBody(parse(t, `name = "x-${suffix}"`), nil, &attrs)
	require.False(t, diags.HasErrors())

	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{"suffix": cty.StringVal("1")}}

	var name string
	set, diags := DecodeOptional(attrs.Name, evalCtx, &name)
	require.False(t, diags.HasErrors())
	assert.True(t, set)
	assert.Equal(t, "x-1", name)

	count := 7
	set, diags = DecodeOptional(attrs.Count, evalCtx, &count)
	assert.Empty(t, diags)
	assert.False(t, set)
	assert.Equal(t, 7, count, "untouched when omitted")
}

func TestDecodeOptional_TypeMismatch(t *testing.T) {
	t.Parallel()

	var attrs optionalAttrs
	require.False(t, gohcl.DecodeBody(parse(t, `count = "many"`), nil, &attrs).HasErrors())

	var count int
	set, diags := DecodeOptional(attrs.Count, nil, &count)
	assert.False(t, set)
	assert.True(t, diags.HasErrors())
}
