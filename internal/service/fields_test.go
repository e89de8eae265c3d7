package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		delim string
		want  []string
	}{
		{
			name:  "task and time",
			text:  "Gọi khách - 15h",
			delim: "-",
			want:  []string{"Gọi khách", "15h"},
		},
		{
			name:  "item and amount",
			text:  "Mua cà phê - 25000",
			delim: "-",
			want:  []string{"Mua cà phê", "25000"},
		},
		{
			name:  "item amount payer",
			text:  "Mua cà phê - 25000 - Linh",
			delim: "-",
			want:  []string{"Mua cà phê", "25000", "Linh"},
		},
		{
			name:  "no delimiter",
			text:  "chỉ một trường",
			delim: "-",
			want:  []string{"chỉ một trường"},
		},
		{
			name:  "empty pieces are kept",
			text:  "a - - b",
			delim: "-",
			want:  []string{"a", "", "b"},
		},
		{
			name:  "trailing fields survive",
			text:  "Họp nhóm - 9h - phòng 3 - nhớ mang laptop",
			delim: "-",
			want:  []string{"Họp nhóm", "9h", "phòng 3", "nhớ mang laptop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitFields(tt.text, tt.delim))
		})
	}
}
