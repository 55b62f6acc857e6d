package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduler(t *testing.T) {
	// given
	store, _, _, teardown := setup(t)
	defer teardown()

	// when
	scheduler, err := NewScheduler(store, "*/15 * * * *")

	// then
	assert.NoError(t, err)
	assert.NotNil(t, scheduler)
}

func TestNewScheduler_RejectsInvalidSpec(t *testing.T) {
	// given
	store, _, _, teardown := setup(t)
	defer teardown()

	// when
	_, err := NewScheduler(store, "every full moon")

	// then
	assert.Error(t, err)
}
