package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("raw and produced artifacts", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()

		raw, err := r.Raw("s1_R1.fastq.gz")
		require.NoError(t, err)
		out, err := r.Produce("s1_trimmed_R1.fastq.gz", "fastp_s1", true)
		require.NoError(t, err)

		assert.True(t, r.Get(raw).Raw())
		assert.False(t, r.Get(out).Raw())
		assert.Equal(t, "fastp_s1", r.Get(out).Producer)
		assert.True(t, r.Get(out).StageOut)

		h, ok := r.Lookup("s1_trimmed_R1.fastq.gz")
		require.True(t, ok)
		assert.Equal(t, out, h)
		assert.Equal(t, 2, r.Len())
	})

	t.Run("names are unique across raw and produced", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()

		_, err := r.Raw("a")
		require.NoError(t, err)

		_, err = r.Produce("a", "job", false)
		require.ErrorIs(t, err, ErrNameCollision)
		assert.ErrorContains(t, err, `"a"`)

		_, err = r.Raw("a")
		require.ErrorIs(t, err, ErrNameCollision)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("consumers are recorded in order", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		h, err := r.Produce("s1_contigs.fa", "megahit_s1", true)
		require.NoError(t, err)

		require.NoError(t, r.Consume(h, "quast_s1"))
		require.NoError(t, r.Consume(h, "prodigal_s1"))
		assert.Equal(t, []string{"quast_s1", "prodigal_s1"}, r.Get(h).Consumers)

		err = r.Consume(Handle(42), "x")
		assert.ErrorIs(t, err, ErrMissingInput)
	})

	t.Run("returned artifacts are copies", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		h, err := r.Raw("a")
		require.NoError(t, err)
		require.NoError(t, r.Consume(h, "j1"))

		got := r.Get(h)
		got.Consumers[0] = "mutated"
		assert.Equal(t, []string{"j1"}, r.Get(h).Consumers)
	})

	t.Run("invalid handle panics on Get", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { NewRegistry().Get(0) })
	})
}
