package models_test

import (
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/models"
)

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		in       models.Pagination
		wantPage int
		wantSize int
	}{
		{models.Pagination{}, 1, models.DefaultPageSize},
		{models.Pagination{Page: -3, PageSize: -1}, 1, models.DefaultPageSize},
		{models.Pagination{Page: 4, PageSize: 10}, 4, 10},
	}
	for _, tc := range cases {
		got := tc.in.Normalize()
		if got.Page != tc.wantPage || got.PageSize != tc.wantSize {
			t.Errorf("Normalize(%+v) = %+v, want page=%d size=%d", tc.in, got, tc.wantPage, tc.wantSize)
		}
	}
}

func TestPaginationOffset(t *testing.T) {
	p := models.Pagination{Page: 3, PageSize: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{41, 20, 3},
		{5, 0, 1}, // zero page size falls back to the default
	}
	for _, tc := range cases {
		if got := models.TotalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}
