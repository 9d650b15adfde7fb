package errors

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestBuilderWithMessagef(t *testing.T) {
	err := WithError(errors.New("boom")).
		WithMessagef("uploading %s to bucket %s", "img.png", "gallery").
		Mark(ErrAsset)

	assert.True(t, errors.Is(err, ErrAsset))
	assert.Contains(t, err.Error(), "uploading img.png to bucket gallery")
	assert.Contains(t, err.Error(), "boom")
}

func TestBuilderHintSurvivesMark(t *testing.T) {
	err := NewError("lookup failed").
		WithHintf("user %s was not found", "user_1").
		Mark(ErrNotFound)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, errors.GetAllHints(err), "user user_1 was not found")
}
