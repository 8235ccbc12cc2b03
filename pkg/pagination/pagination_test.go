// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhle/reelo/pkg/pagination"
)

/*
TestParams_Offset verifies the page-to-offset arithmetic.
*/
func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		page   int
		limit  int
		offset int
	}{
		{"first_page", 1, 10, 0},
		{"second_page", 2, 10, 10},
		{"feed_page_three", 3, 5, 10},
		{"zero_page_clamped", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Params{Page: tt.page, Limit: tt.limit}
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}

/*
TestNewMeta verifies total-pages rounding.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		totalPages int
	}{
		{"exact_fit", 20, 10, 2},
		{"partial_last_page", 21, 10, 3},
		{"empty", 0, 10, 0},
		{"zero_limit", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

/*
TestFromRequest verifies query parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		page  int
		limit int
	}{
		{"defaults", "/videos", pagination.DefaultPage, pagination.DefaultLimit},
		{"explicit", "/videos?page=3&limit=25", 3, 25},
		{"negative_page", "/videos?page=-1", pagination.DefaultPage, pagination.DefaultLimit},
		{"excessive_limit", "/videos?limit=9999", pagination.DefaultPage, pagination.MaxLimit},
		{"garbage", "/videos?page=abc&limit=xyz", pagination.DefaultPage, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}
