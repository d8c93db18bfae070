package loader

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &fakeFeature{name: "variation", enabled: true}
	off := &fakeFeature{name: "reports", enabled: false}

	m := NewManager()
	m.Register(on)
	m.Register(off)

	assert.NoError(t, m.LoadAll(fiber.New()))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Len(t, m.Features(), 2)
}

func TestManager_LoadAllError(t *testing.T) {
	m := NewManager()
	m.Register(&fakeFeature{name: "broken", enabled: true, err: assert.AnError})

	err := m.LoadAll(fiber.New())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "broken")
}

func TestManager_DuplicateName(t *testing.T) {
	m := NewManager()
	m.Register(&fakeFeature{name: "variation", enabled: true})
	m.Register(&fakeFeature{name: "variation", enabled: true})

	assert.ErrorContains(t, m.LoadAll(fiber.New()), "registered twice")
}
