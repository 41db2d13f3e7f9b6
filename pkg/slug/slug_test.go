// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhngo/travia/pkg/slug"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Beach Holidays", "beach-holidays"},
		{"accents stripped", "Đà Nẵng – Hội An", "da-nang-hoi-an"},
		{"d-bar folds to d", "Hạ Long 3N2Đ", "ha-long-3n2d"},
		{"uppercase d-bar", "ĐẢO PHÚ QUỐC", "dao-phu-quoc"},
		{"punctuation collapses", "Sài Gòn -- by night!!", "sai-gon-by-night"},
		{"leading and trailing noise", "  --Tết 2026--  ", "tet-2026"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.From(tc.input))
		})
	}
}
