// Copyright (c) 2026 Savora. All rights reserved.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ExtraOriginList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "empty", value: "", want: nil},
		{name: "single", value: "https://staging.example.com", want: []string{"https://staging.example.com"}},
		{
			name:  "comma separated with noise",
			value: " https://a.example.com , ,https://b.example.com",
			want:  []string{"https://a.example.com", "https://b.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ExtraOrigins: tt.value}
			assert.Equal(t, tt.want, cfg.ExtraOriginList())
		})
	}
}
