package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/stretchr/testify/assert"
)

type recordingSender struct {
	mu     sync.Mutex
	frames []Frame
	err    error
}

func (s *recordingSender) Send(frame Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
	return s.err
}

func TestChannel_Lifecycle(t *testing.T) {
	ch := NewChannel()
	assert.Equal(t, StateConnecting, ch.State())
	assert.NotEmpty(t, ch.ID())

	sender := &recordingSender{}
	assert.False(t, ch.Open(sender), "cannot open before authentication")

	id := core.Identity{ID: "u1", Email: "u1@example.com"}
	assert.True(t, ch.Authenticate(id))
	assert.Equal(t, StateAuthenticated, ch.State())
	assert.False(t, ch.Authenticate(core.Identity{ID: "u2"}), "identity is bound once")
	assert.Equal(t, id, ch.Identity())

	assert.True(t, ch.Open(sender))
	assert.Equal(t, StateOpen, ch.State())

	assert.NoError(t, ch.Emit(answerFrame("r1", "halo")))
	ch.Close()
	assert.Equal(t, StateClosed, ch.State())

	assert.NoError(t, ch.Emit(answerFrame("r2", "ignored")))
	assert.Len(t, sender.frames, 1)
	assert.Equal(t, "r1", sender.frames[0].RequestID)
}

func TestChannel_EmitBeforeOpenIsNoop(t *testing.T) {
	ch := NewChannel()
	assert.NoError(t, ch.Emit(answerFrame("r1", "x")))
}

func TestChannel_EmitPropagatesSendError(t *testing.T) {
	ch := NewChannel()
	ch.Authenticate(core.Identity{ID: "u1"})
	ch.Open(&recordingSender{err: errors.New("broken pipe")})

	assert.Error(t, ch.Emit(answerFrame("r1", "x")))
}

// stallingSender blocks every Send until release is closed and records
// whether two sends ever overlapped.
type stallingSender struct {
	release chan struct{}
	started chan struct{}
	active  atomic.Int32
	overlap atomic.Bool
}

func (s *stallingSender) Send(Frame) error {
	if s.active.Add(1) > 1 {
		s.overlap.Store(true)
	}
	defer s.active.Add(-1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-s.release
	return nil
}

func TestChannel_SlowPeerDoesNotBlockState(t *testing.T) {
	sender := &stallingSender{release: make(chan struct{}), started: make(chan struct{}, 1)}
	ch := NewChannel()
	ch.Authenticate(core.Identity{ID: "u1"})
	ch.Open(sender)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ch.Emit(answerFrame("r", "x"))
		}()
	}
	<-sender.started

	closed := make(chan struct{})
	go func() {
		assert.Equal(t, StateOpen, ch.State())
		ch.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked behind a pending write")
	}

	close(sender.release)
	wg.Wait()
	assert.False(t, sender.overlap.Load(), "writes must not interleave")
	assert.Equal(t, StateClosed, ch.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
}
