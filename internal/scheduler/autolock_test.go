package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocker struct{ calls int }

func (f *fakeLocker) AutoLockPreviousMonth(time.Time) (int64, error) {
	f.calls++
	return 0, nil
}

func TestStartAutoLockDisabled(t *testing.T) {
	c, err := StartAutoLock("", &fakeLocker{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStartAutoLockRejectsBadSchedule(t *testing.T) {
	_, err := StartAutoLock("moi ngay luc nao", &fakeLocker{})
	assert.Error(t, err)
}

func TestStartAutoLockRegistersJob(t *testing.T) {
	c, err := StartAutoLock("0 2 5 * *", &fakeLocker{})
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Next.Day())
}
