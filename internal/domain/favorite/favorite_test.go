//go:build unit

package favorite_test

import (
	"testing"
	"time"

	"slot-reservation/internal/domain/favorite"
	"slot-reservation/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	f := favorite.New(uuid.New(), resource.NewKey(resource.TypeEV, 3), time.Now())

	assert.True(t, f.Matches(3, ""))
	assert.True(t, f.Matches(3, resource.TypeEV))
	assert.False(t, f.Matches(3, resource.TypeParking))
	assert.False(t, f.Matches(4, ""))
}
