package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sandevgo/sejarahbot/internal/core"
)

type State int

const (
	StateConnecting State = iota
	StateAuthenticated
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Sender writes one frame to the peer.
type Sender interface {
	Send(frame Frame) error
}

// Channel is one authenticated session. The identity is fixed once
// authenticated and never re-checked.
type Channel struct {
	id string

	mu       sync.Mutex
	state    State
	identity core.Identity
	sender   Sender

	// writeMu serialises frames on the wire; mu only guards state.
	writeMu sync.Mutex
}

func NewChannel() *Channel {
	return &Channel{id: uuid.NewString(), state: StateConnecting}
}

func (c *Channel) ID() string {
	return c.id
}

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Channel) Identity() core.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Authenticate binds identity. It only succeeds from Connecting.
func (c *Channel) Authenticate(identity core.Identity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnecting {
		return false
	}
	c.identity = identity
	c.state = StateAuthenticated
	return true
}

// Open attaches the transport. It only succeeds from Authenticated.
func (c *Channel) Open(sender Sender) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated {
		return false
	}
	c.sender = sender
	c.state = StateOpen
	return true
}

// Emit sends frame while the channel is open. Once closed it is a no-op.
func (c *Channel) Emit(frame Frame) error {
	c.mu.Lock()
	if c.state != StateOpen {
		c.mu.Unlock()
		return nil
	}
	sender := c.sender
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return sender.Send(frame)
}

func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.sender = nil
}
