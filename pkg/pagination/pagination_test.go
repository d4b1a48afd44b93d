package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsInputs(t *testing.T) {
	n := Params{Page: 0, Limit: 0}.Normalize()
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, DefaultLimit, n.Limit)

	n = Params{Page: -3, Limit: 5000}.Normalize()
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, MaxLimit, n.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, Params{}.Offset())
}

func TestNewMetaRoundsPagesUp(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 20}, 41)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(41), meta.TotalItems)
	assert.Equal(t, 20, meta.ItemsPerPage)

	meta = NewMeta(Params{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
