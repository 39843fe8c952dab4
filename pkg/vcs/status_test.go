package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "clean", StatusClean.String())
	assert.Equal(t, "changed", StatusChanged.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestStaticStatus(t *testing.T) {
	assert.Equal(t, StatusChanged, StaticStatus(StatusChanged).FileStatus(context.Background(), "any.php"))
	assert.Equal(t, StatusClean, StaticStatus(StatusClean).FileStatus(context.Background(), "any.php"))
}
