package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnOptions_ZeroValuesGetDefaults(t *testing.T) {
	opts := ConnOptions{}.withDefaults()

	assert.Equal(t, 10*time.Second, opts.ConnectTimeout)
	assert.Equal(t, 5*time.Second, opts.ServerSelectionTimeout)
	assert.Equal(t, uint64(100), opts.MaxPoolSize)
	assert.Equal(t, uint64(10), opts.MinPoolSize)
}

func TestConnOptions_ProvidedValuesKept(t *testing.T) {
	opts := ConnOptions{
		ConnectTimeout:         2 * time.Second,
		ServerSelectionTimeout: time.Second,
		MaxPoolSize:            20,
		MinPoolSize:            2,
	}.withDefaults()

	assert.Equal(t, 2*time.Second, opts.ConnectTimeout)
	assert.Equal(t, time.Second, opts.ServerSelectionTimeout)
	assert.Equal(t, uint64(20), opts.MaxPoolSize)
	assert.Equal(t, uint64(2), opts.MinPoolSize)
}
