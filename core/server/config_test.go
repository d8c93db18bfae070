package server_test

import (
	"testing"

	"variation-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"Plain", "9000", ":9000"},
		{"WithColon", ":9000", ":9000"},
		{"Empty", "", ":8080"},
		{"Spaces", " 81 ", ":81"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Address())
		})
	}
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "secret"}.AuthEnabled())
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 8<<20, server.Config{}.BodyLimit())
	assert.Equal(t, 2<<20, server.Config{BodyLimitMB: 2}.BodyLimit())
}
