package dedup

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/samber/lo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(msg, req string) model.UsageRecord {
	data := model.UsageRecordData{RequestID: model.RequestID(req)}
	if msg != "" {
		data.Message = &model.Message{ID: model.MessageID(msg)}
	}
	return model.UsageRecord{Data: data, SessionID: model.NewSessionID("s")}
}

func TestSetAdd(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add("a:b"))
	assert.False(t, s.Add("a:b"))
	assert.True(t, s.Add("a:c"))
	assert.Equal(t, 2, s.Len())
}

func TestSetKeep(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Keep(record("m1", "r1")))
	assert.False(t, s.Keep(record("m1", "r1")))
	// same message id under a different request is a different response
	assert.True(t, s.Keep(record("m1", "r2")))

	// records without both ids are never removed
	for i := 0; i < 3; i++ {
		assert.True(t, s.Keep(record("m9", "")))
		assert.True(t, s.Keep(record("", "r9")))
		assert.True(t, s.Keep(record("", "")))
	}
	assert.Equal(t, 2, s.Len())
}

func TestSetKeepAcrossBatches(t *testing.T) {
	s := NewSet()
	in := []model.UsageRecord{
		record("m1", "r1"),
		record("m2", "r2"),
		record("m1", "r1"),
		record("", ""),
		record("", ""),
	}
	out := lo.Filter(in, func(r model.UsageRecord, _ int) bool { return s.Keep(r) })
	require.Len(t, out, 4)
	assert.Equal(t, model.RequestID("r2"), out[1].Data.RequestID)

	// a second batch sees the hashes from the first
	assert.False(t, s.Keep(record("m2", "r2")))
}

func TestSetConcurrentExactlyOneSurvivor(t *testing.T) {
	s := NewSet()
	const workers = 16
	const hashes = 500

	var kept [hashes]atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < hashes; i++ {
				if s.Keep(record(fmt.Sprintf("msg_%d", i), "req")) {
					kept[i].Add(1)
				}
			}
		}()
	}
	close(start)
	wg.Wait()

	for i := range kept {
		assert.Equal(t, int32(1), kept[i].Load(), "hash %d", i)
	}
	assert.Equal(t, hashes, s.Len())
}
