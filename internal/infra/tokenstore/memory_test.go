package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	tok := &scheduling.Token{AccessToken: "abc", InstanceURL: "https://x.my.salesforce.com"}
	require.NoError(t, m.Save(ctx, tok))

	got, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tok, got)

	// callers get a copy
	got.AccessToken = "mutated"
	again, _ := m.Load(ctx)
	assert.Equal(t, "abc", again.AccessToken)

	require.NoError(t, m.Clear(ctx))
	got, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryMaxAge(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(20 * time.Millisecond)

	require.NoError(t, m.Save(ctx, &scheduling.Token{AccessToken: "abc"}))

	got, _ := m.Load(ctx)
	require.NotNil(t, got)

	assert.Eventually(t, func() bool {
		got, _ := m.Load(ctx)
		return got == nil
	}, time.Second, 10*time.Millisecond)
}
