package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "empty means local", timezone: ""},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone Asia/Shanghai", timezone: "Asia/Shanghai"},
		{name: "invalid timezone", timezone: "Mars/Olympus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone 'Mars/Olympus'")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, GetTimeProvider())
		})
	}
	require.NoError(t, InitializeTimeProvider("Local"))
}

func TestGetTimeProviderDefaults(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	tp := GetTimeProvider()
	require.NotNil(t, tp)
	assert.Equal(t, time.Local, tp.Location())
}

func TestTimeProviderFreeze(t *testing.T) {
	tp := &TimeProvider{clock: time.Now}
	require.NoError(t, tp.SetTimezone("UTC"))

	fixed := time.Date(2025, 8, 10, 12, 0, 0, 0, time.FixedZone("X", 3600))
	tp.Freeze(fixed)
	assert.True(t, tp.Now().Equal(fixed))
	assert.Equal(t, time.UTC, tp.Now().Location())

	tp.Freeze(time.Time{})
	assert.WithinDuration(t, time.Now(), tp.Now(), time.Minute)
}

func TestTimeProviderInAndFormat(t *testing.T) {
	tp := &TimeProvider{clock: time.Now}
	require.NoError(t, tp.SetTimezone("Asia/Shanghai"))

	utc := time.Date(2025, 8, 10, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, 0, tp.In(utc).Hour())
	assert.Equal(t, "2025-08-11 00:30", tp.Format(utc, "2006-01-02 15:04"))
}

func TestTimeProviderConcurrency(t *testing.T) {
	tp := &TimeProvider{clock: time.Now}
	require.NoError(t, tp.SetTimezone("UTC"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = tp.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = tp.SetTimezone("UTC")
			}
		}()
	}
	wg.Wait()
}
