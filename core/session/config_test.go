package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SessionTTL(t *testing.T) {
	assert.Equal(t, 15*time.Minute, Config{SessionTTLMinutes: 15}.SessionTTL())
	assert.Equal(t, time.Hour, Config{}.SessionTTL())
	assert.Equal(t, time.Hour, Config{SessionTTLMinutes: -5}.SessionTTL())
}

func TestConfig_CompanyIDs(t *testing.T) {
	assert.Equal(t, []string{"acme", "globex"}, Config{Companies: " acme,, globex ,"}.CompanyIDs())
	assert.Nil(t, Config{}.CompanyIDs())
}
