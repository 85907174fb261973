package pathcache_test

import (
	"testing"

	"github.com/rohmanhakim/cloudmeta/internal/pathcache"
	"github.com/stretchr/testify/assert"
)

func TestMemory_PutGet(t *testing.T) {
	c := pathcache.NewMemory[string]()

	_, ok := c.Get("openstack/latest/user_data")
	assert.False(t, ok)

	c.Put("openstack/latest/user_data", "#cloud-config")

	got, ok := c.Get("openstack/latest/user_data")
	assert.True(t, ok)
	assert.Equal(t, "#cloud-config", got)
	assert.Equal(t, 1, c.Len())
}

func TestMemory_PutOverwrites(t *testing.T) {
	c := pathcache.NewMemory[string]()

	c.Put("openstack/latest/meta_data.json", "first")
	c.Put("openstack/latest/meta_data.json", "second")

	got, ok := c.Get("openstack/latest/meta_data.json")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
	assert.Equal(t, 1, c.Len())
}

func TestMemory_Reset(t *testing.T) {
	c := pathcache.NewMemory[string]()

	c.Put("openstack/latest/user_data", "a")
	c.Put("openstack/latest/meta_data.json", "b")
	assert.Equal(t, 2, c.Len())

	c.Reset()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("openstack/latest/user_data")
	assert.False(t, ok)
}
