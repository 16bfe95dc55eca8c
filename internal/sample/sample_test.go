package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  RawRecord
		want Sample
	}{
		{
			name: "paired record",
			raw:  RawRecord{ID: "s1", Forward: "a_R1.fq.gz", Reverse: "a_R2.fq.gz", Group: "gut"},
			want: Sample{ID: "s1", Group: "gut", Layout: Paired, Forward: "a_R1.fq.gz", Reverse: "a_R2.fq.gz"},
		},
		{
			name: "single-end flag drops the reverse read",
			raw:  RawRecord{ID: "s2", Forward: "b.fq.gz", Reverse: "ignored.fq.gz", SingleEnd: true},
			want: Sample{ID: "s2", Group: DefaultGroup, Layout: SingleEnd, Forward: "b.fq.gz"},
		},
		{
			name: "missing reverse read is inferred single-end",
			raw:  RawRecord{ID: "s3", Forward: "c.fq.gz"},
			want: Sample{ID: "s3", Group: DefaultGroup, Layout: SingleEnd, Forward: "c.fq.gz", LayoutInferred: true},
		},
		{
			name: "surrounding whitespace is trimmed",
			raw:  RawRecord{ID: " s4 ", Forward: " d.fq.gz", Reverse: "e.fq.gz ", Group: " g "},
			want: Sample{ID: "s4", Group: "g", Layout: Paired, Forward: "d.fq.gz", Reverse: "e.fq.gz"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Layout == Paired, got.IsPaired())
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     RawRecord
		wantMsg string
	}{
		{name: "missing id", raw: RawRecord{Forward: "a.fq.gz"}, wantMsg: "record is missing id"},
		{name: "blank id", raw: RawRecord{ID: "  ", Forward: "a.fq.gz"}, wantMsg: "missing id"},
		{name: "missing forward read", raw: RawRecord{ID: "s1"}, wantMsg: `record "s1" is missing forward read`},
		{name: "missing both", raw: RawRecord{}, wantMsg: "id, forward read"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Normalize(tc.raw)
			require.ErrorIs(t, err, ErrInvalidSample)
			assert.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      Sample
		want    Sample
		wantMsg string
	}{
		{
			name: "paired sample unchanged",
			in:   Sample{ID: "s1", Group: "gut", Layout: Paired, Forward: "a_1.fq", Reverse: "a_2.fq"},
			want: Sample{ID: "s1", Group: "gut", Layout: Paired, Forward: "a_1.fq", Reverse: "a_2.fq"},
		},
		{
			name: "paired without reverse becomes single-end",
			in:   Sample{ID: "s1", Layout: Paired, Forward: "a_1.fq"},
			want: Sample{ID: "s1", Group: DefaultGroup, Layout: SingleEnd, Forward: "a_1.fq", LayoutInferred: true},
		},
		{
			name: "single-end drops a stray reverse read",
			in:   Sample{ID: "s1", Layout: SingleEnd, Forward: "a.fq", Reverse: "b.fq"},
			want: Sample{ID: "s1", Group: DefaultGroup, Layout: SingleEnd, Forward: "a.fq"},
		},
		{name: "missing id", in: Sample{Forward: "a.fq"}, wantMsg: "record is missing id"},
		{name: "missing forward read", in: Sample{ID: "s1", Reverse: "b.fq"}, wantMsg: `record "s1" is missing forward read`},
		{name: "unknown layout", in: Sample{ID: "s1", Forward: "a.fq", Layout: Layout(9)}, wantMsg: "unknown layout Layout(9)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Check(tc.in)
			if tc.wantMsg != "" {
				require.ErrorIs(t, err, ErrInvalidSample)
				assert.ErrorContains(t, err, tc.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "paired-end", Paired.String())
	assert.Equal(t, "single-end", SingleEnd.String())
	assert.Equal(t, "Layout(7)", Layout(7).String())
}
