package cleanup_test

import (
	"errors"
	"testing"

	"github.com/limbo/timely/pkg/cleanup"
	"github.com/stretchr/testify/assert"
)

func TestCleanUp(t *testing.T) {
	var ran []string
	cleanup.Register(&cleanup.Job{Name: "first", F: func() error {
		ran = append(ran, "first")
		return nil
	}})
	cleanup.Register(&cleanup.Job{Name: "second", F: func() error {
		ran = append(ran, "second")
		return errors.New("mocked error")
	}})
	cleanup.Register(&cleanup.Job{Name: "third", F: func() error {
		ran = append(ran, "third")
		return nil
	}})
	cleanup.CleanUp()
	// A failing job must not stop the ones after it
	assert.Equal(t, []string{"first", "second", "third"}, ran)
}
