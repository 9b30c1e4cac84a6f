// Copyright (c) 2026 MADR contributors. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/pkg/pagination"
)

/*
TestFromRequest covers defaults, valid values and each rejection.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      pagination.Params
		badParams []string
	}{
		{"defaults", "", pagination.Default(), nil},
		{"explicit", "?offset=40&limit=10", pagination.Params{Offset: 40, Limit: 10}, nil},
		{"zero_limit", "?limit=0", pagination.Params{Offset: 0, Limit: 0}, nil},
		{"max_limit", "?limit=100", pagination.Params{Offset: 0, Limit: 100}, nil},
		{"negative_offset", "?offset=-1", pagination.Params{}, []string{"offset"}},
		{"limit_too_large", "?limit=101", pagination.Params{}, []string{"limit"}},
		{"not_numbers", "?offset=a&limit=b", pagination.Params{}, []string{"offset", "limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/livro/"+tt.query, nil)

			params, errs := pagination.FromRequest(request)

			if tt.badParams == nil {
				require.Empty(t, errs)
				assert.Equal(t, tt.want, params)
				return
			}

			require.Len(t, errs, len(tt.badParams))
			for i, param := range tt.badParams {
				assert.Equal(t, param, errs[i].Param)
			}
		})
	}
}

/*
TestWindow slices in-memory lists the same way LIMIT/OFFSET would.
*/
func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, pagination.Window(items, pagination.Params{Offset: 0, Limit: 2}))
	assert.Equal(t, []int{4, 5}, pagination.Window(items, pagination.Params{Offset: 3, Limit: 20}))
	assert.Empty(t, pagination.Window(items, pagination.Params{Offset: 5, Limit: 20}))
	assert.Empty(t, pagination.Window(items, pagination.Params{Offset: 0, Limit: 0}))
	assert.NotNil(t, pagination.Window(items, pagination.Params{Offset: 9, Limit: 1}))
}
