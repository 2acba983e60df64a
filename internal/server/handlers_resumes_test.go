package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedUpload(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".pdf", true},
		{".docx", true},
		{".doc", true},
		{".txt", false},
		{".png", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isSupportedUpload(tt.ext), "ext=%q", tt.ext)
	}
}
