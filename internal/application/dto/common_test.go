package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
)

func TestDefaultPage(t *testing.T) {
	casos := []struct {
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{dto.PageRequest{}, dto.PageRequest{Page: 1, Limit: 20}},
		{dto.PageRequest{Page: -1, Limit: -5}, dto.PageRequest{Page: 1, Limit: 20}},
		{dto.PageRequest{Page: 3, Limit: 50}, dto.PageRequest{Page: 3, Limit: 50}},
		{dto.PageRequest{Page: 1, Limit: 500}, dto.PageRequest{Page: 1, Limit: 100}},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, c.in.DefaultPage(), "entrada: %+v", c.in)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, dto.PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, dto.PageRequest{Page: 3, Limit: 20}.Offset())
}

func TestNewPageMeta(t *testing.T) {
	meta := dto.NewPageMeta(45, dto.PageRequest{Page: 2, Limit: 20})
	assert.Equal(t, 45, meta.TotalRecords)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)

	meta = dto.NewPageMeta(40, dto.PageRequest{Page: 1, Limit: 20})
	assert.Equal(t, 2, meta.TotalPages)

	meta = dto.NewPageMeta(0, dto.PageRequest{Page: 1, Limit: 20})
	assert.Equal(t, 0, meta.TotalPages)
}
