package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "6948965371", want: "+306948965371"},
		{raw: "694 896 5371", want: "+306948965371"},
		{raw: "+30 694 896 5371", want: "+306948965371"},
		{raw: "306948965371", want: "+306948965371"},
		{raw: "0030 6948965371", want: "+306948965371"},
		{raw: "2310-123456", want: "+302310123456"},
		{raw: "", want: ""},
		{raw: "abc", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}
