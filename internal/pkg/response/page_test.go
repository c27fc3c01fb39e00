package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageResponse(t *testing.T) {
	p := NewPageResponse[string](nil, 1, 10, 25)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPageResponse([]string{"a"}, 1, 0, 1)
	assert.Equal(t, 0, p.TotalPages)
}
