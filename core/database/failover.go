package database

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type State int32

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Connector opens a fresh store handle. It must release anything it created
// when it fails.
type Connector func(ctx context.Context) (*gorm.DB, error)

// Failover is the connectivity view that read and write paths consult.
type Failover interface {
	IsConnected(ctx context.Context) bool
	Reconnect(ctx context.Context) bool
	MarkDisconnected()
}

type ControllerConfig struct {
	Driver         string
	Pooled         bool
	ProbeTimeout   time.Duration
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
	// OnConnect runs against every fresh handle before it is published, e.g.
	// to migrate the schema. An error fails the attempt.
	OnConnect func(ctx context.Context, db *gorm.DB) error
}

// Controller owns the store handle and its connectivity state.
// Reconnection is single-flight: concurrent callers share one attempt.
type Controller struct {
	connect Connector
	cfg     ControllerConfig

	mu    sync.RWMutex
	db    *gorm.DB
	state atomic.Int32

	flight   singleflight.Group
	attempts atomic.Int64
}

func NewController(connect Connector, cfg ControllerConfig) *Controller {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 500 * time.Millisecond
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	return &Controller{connect: connect, cfg: cfg}
}

// Start performs the first connection attempt. A failure is not fatal, the
// service keeps running in degraded mode.
func (c *Controller) Start(ctx context.Context) bool {
	if c.Reconnect(ctx) {
		logrus.Infof("[DATABASE] Connected to %s store", c.cfg.Driver)
		return true
	}
	logrus.Warnf("[DATABASE] %s store unavailable at startup, running in degraded mode", c.cfg.Driver)
	return false
}

// DB returns the current handle. It may be nil while disconnected.
func (c *Controller) DB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) Driver() string {
	return c.cfg.Driver
}

// Attempts is the number of connection attempts made so far.
func (c *Controller) Attempts() int64 {
	return c.attempts.Load()
}

func (c *Controller) MarkDisconnected() {
	if State(c.state.Swap(int32(Disconnected))) == Connected {
		logrus.Warnf("[FAILOVER] %s store marked disconnected", c.cfg.Driver)
	}
}

// IsConnected reports the connectivity state. Pooled drivers are probed with a
// bounded round-trip; single-connection drivers answer with the last known state.
func (c *Controller) IsConnected(ctx context.Context) bool {
	if c.State() != Connected {
		return false
	}
	if !c.cfg.Pooled {
		return true
	}

	db := c.DB()
	if db == nil {
		c.MarkDisconnected()
		return false
	}
	if err := c.probe(ctx, db); err != nil {
		logrus.WithError(err).Warnf("[FAILOVER] %s probe failed", c.cfg.Driver)
		c.MarkDisconnected()
		return false
	}
	return true
}

func (c *Controller) probe(ctx context.Context, db *gorm.DB) error {
	probeCtx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()
	return db.WithContext(probeCtx).Exec("SELECT 1").Error
}

// Reconnect starts a connection attempt, or joins the one in progress, and
// waits at most ReconnectWait for it. The attempt keeps running in the
// background after the wait expires.
func (c *Controller) Reconnect(ctx context.Context) bool {
	ch := c.flight.DoChan("reconnect", func() (any, error) {
		return c.reconnect(context.WithoutCancel(ctx)), nil
	})

	timer := time.NewTimer(c.cfg.ReconnectWait)
	defer timer.Stop()

	select {
	case res := <-ch:
		ok, _ := res.Val.(bool)
		return ok
	case <-timer.C:
		return c.State() == Connected
	case <-ctx.Done():
		return c.State() == Connected
	}
}

func (c *Controller) reconnect(ctx context.Context) bool {
	attempt := c.attempts.Add(1)
	logrus.Infof("[FAILOVER] Connecting to %s store (attempt %d)", c.cfg.Driver, attempt)

	connectCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	db, err := c.connect(connectCtx)
	if err != nil {
		closeDB(db)
		c.state.Store(int32(Disconnected))
		logrus.WithError(err).Warnf("[FAILOVER] %s connection attempt %d failed", c.cfg.Driver, attempt)
		return false
	}
	if err := c.probe(connectCtx, db); err != nil {
		closeDB(db)
		c.state.Store(int32(Disconnected))
		logrus.WithError(err).Warnf("[FAILOVER] %s connection attempt %d failed verification", c.cfg.Driver, attempt)
		return false
	}
	if c.cfg.OnConnect != nil {
		if err := c.cfg.OnConnect(connectCtx, db); err != nil {
			closeDB(db)
			c.state.Store(int32(Disconnected))
			logrus.WithError(err).Errorf("[FAILOVER] %s connection attempt %d failed to prepare the store", c.cfg.Driver, attempt)
			return false
		}
	}

	c.mu.Lock()
	old := c.db
	c.db = db
	c.mu.Unlock()
	c.state.Store(int32(Connected))

	if old != nil && old != db {
		closeDB(old)
	}
	logrus.Infof("[FAILOVER] %s store connected (attempt %d)", c.cfg.Driver, attempt)
	return true
}

// Close releases the current handle.
func (c *Controller) Close() {
	c.mu.Lock()
	db := c.db
	c.db = nil
	c.mu.Unlock()
	c.state.Store(int32(Disconnected))
	closeDB(db)
}

// WithFallback runs op against the store and substitutes fallback when the
// store is unreachable, either up front or mid-operation. Errors that are not
// about connectivity propagate.
func WithFallback[T any](ctx context.Context, f Failover, op func(ctx context.Context) (T, error), fallback T) (T, error) {
	return WithFallbackFunc(ctx, f, op, func() T { return fallback })
}

// WithFallbackFunc is WithFallback with a fallback that is only computed when
// it is served.
func WithFallbackFunc[T any](ctx context.Context, f Failover, op func(ctx context.Context) (T, error), fallback func() T) (T, error) {
	if !f.IsConnected(ctx) && !f.Reconnect(ctx) {
		logrus.Debug("[FAILOVER] Store unavailable, serving fallback")
		return fallback(), nil
	}

	result, err := op(ctx)
	if err != nil {
		if IsConnectivityError(err) {
			logrus.WithError(err).Warn("[FAILOVER] Connectivity failure absorbed, serving fallback")
			f.MarkDisconnected()
			return fallback(), nil
		}
		return result, err
	}
	return result, nil
}

// RequireConnection fails fast for writes when the store cannot be reached
// after one bounded reconnect attempt.
func RequireConnection(ctx context.Context, f Failover) error {
	if f.IsConnected(ctx) || f.Reconnect(ctx) {
		return nil
	}
	return pkgError.UnavailableError("database is unavailable, try again later")
}

// WriteError maps a write failure to a typed error. Connectivity failures
// also flip the controller to disconnected.
func WriteError(f Failover, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectivityError(err) {
		f.MarkDisconnected()
		return pkgError.UnavailableError("database is unavailable, try again later")
	}
	return err
}
