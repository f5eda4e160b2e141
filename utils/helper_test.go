package utils_test

import (
	"errors"
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/utils"
)

func TestParseDate(t *testing.T) {
	d, err := utils.ParseDate("2021-08-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2021 || int(d.Month()) != 8 || d.Day() != 2 {
		t.Errorf("ParseDate returned %v", d)
	}

	for _, bad := range []string{"", "02-08-2021", "2021/08/02", "not-a-date"} {
		if _, err := utils.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		} else if !errors.Is(err, utils.ErrorInvalidInput) {
			t.Errorf("ParseDate(%q) error should wrap ErrorInvalidInput", bad)
		}
	}
}

func TestFormatDatePtr(t *testing.T) {
	if got := utils.FormatDatePtr(nil); got != nil {
		t.Errorf("FormatDatePtr(nil) = %v, want nil", got)
	}

	d, _ := utils.ParseDate("2021-12-31")
	got := utils.FormatDatePtr(&d)
	if got == nil || *got != "2021-12-31" {
		t.Errorf("FormatDatePtr = %v, want 2021-12-31", got)
	}
}

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		value string
		def   int
		want  int
	}{
		{"", 1, 1},
		{"3", 1, 3},
		{"0", 1, 1},
		{"-2", 1, 1},
		{"abc", 20, 20},
		{" 7 ", 1, 7},
	}
	for _, tc := range cases {
		if got := utils.ParsePositiveInt(tc.value, tc.def); got != tc.want {
			t.Errorf("ParsePositiveInt(%q, %d) = %d, want %d", tc.value, tc.def, got, tc.want)
		}
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	// a valid AU mobile normalizes to E.164
	if got := utils.NormalizePhoneNumber("0412 345 678"); got != "+61412345678" {
		t.Errorf("NormalizePhoneNumber = %q, want +61412345678", got)
	}
	// unparseable input passes through untouched; storage never rejects on format
	if got := utils.NormalizePhoneNumber("ext. 1234"); got != "ext. 1234" {
		t.Errorf("NormalizePhoneNumber passthrough = %q", got)
	}
}
