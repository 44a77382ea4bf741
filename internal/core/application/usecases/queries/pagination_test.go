package queries

import (
	"math"
	"testing"

	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        PageRequest
		wantErr     bool
	}{
		{name: "defaults", want: PageRequest{Page: 1, Limit: 10}},
		{name: "explicit", page: 3, limit: 25, want: PageRequest{Page: 3, Limit: 25}},
		{name: "max limit", page: 1, limit: 100, want: PageRequest{Page: 1, Limit: 100}},
		{name: "limit above max", page: 1, limit: 101, wantErr: true},
		{name: "negative page", page: -1, limit: 10, wantErr: true},
		{name: "max page", page: MaxPage, limit: MaxLimit, want: PageRequest{Page: MaxPage, Limit: MaxLimit}},
		{name: "page above max", page: MaxPage + 1, limit: 10, wantErr: true},
		{name: "page whose offset would overflow", page: math.MaxInt/10 + 2, limit: 10, wantErr: true},
		{name: "negative limit", page: 1, limit: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPageRequest(tt.page, tt.limit)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errs.KindValidation, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p, err := NewPageRequest(MaxPage, MaxLimit)
	require.NoError(t, err)

	assert.Equal(t, (MaxPage-1)*MaxLimit, p.Offset())
	assert.LessOrEqual(t, p.Offset(), math.MaxInt32)
}

func TestPaginate(t *testing.T) {
	t.Run("first of three pages", func(t *testing.T) {
		p := paginate(PageRequest{Page: 1, Limit: 10}, 25)

		assert.Equal(t, 3, p.Pages)
		require.NotNil(t, p.NextPage)
		assert.Equal(t, 2, *p.NextPage)
		assert.Nil(t, p.PrevPage)
	})

	t.Run("last page", func(t *testing.T) {
		p := paginate(PageRequest{Page: 3, Limit: 10}, 25)

		assert.Nil(t, p.NextPage)
		require.NotNil(t, p.PrevPage)
		assert.Equal(t, 2, *p.PrevPage)
	})

	t.Run("exact multiple has no next page", func(t *testing.T) {
		p := paginate(PageRequest{Page: 2, Limit: 10}, 20)

		assert.Equal(t, 2, p.Pages)
		assert.Nil(t, p.NextPage)
	})

	t.Run("empty result", func(t *testing.T) {
		p := paginate(PageRequest{Page: 1, Limit: 10}, 0)

		assert.Equal(t, 0, p.Pages)
		assert.Nil(t, p.NextPage)
		assert.Nil(t, p.PrevPage)
	})
}
