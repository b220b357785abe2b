package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Version string `json:"version" validate:"required,nowhitespace"`
	Name    string `json:"name" validate:"required,max=8"`
	BaseURL string `json:"base_url" validate:"omitempty,http_url"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{Version: "v2", Name: "Draft", BaseURL: "http://localhost:8001"}},
		{name: "missing version", in: sample{Name: "Draft"}, wantErr: "version is required"},
		{name: "whitespace", in: sample{Version: "v 2", Name: "Draft"}, wantErr: "version must not contain whitespace"},
		{name: "tab", in: sample{Version: "v\t2", Name: "Draft"}, wantErr: "version must not contain whitespace"},
		{name: "too long", in: sample{Version: "v2", Name: "a very long name"}, wantErr: "name must be at most 8 characters"},
		{name: "bad url", in: sample{Version: "v2", Name: "Draft", BaseURL: "ftp://x"}, wantErr: "base_url must be a valid http(s) URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateStruct_JoinsMessages(t *testing.T) {
	err := ValidateStruct(sample{})
	assert.EqualError(t, err, "version is required; name is required")
}
