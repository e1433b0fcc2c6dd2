package grpcserver

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tecnoAcademiaAdmin/internal/directory"
)

const (
	mirrorCallTimeout = 3 * time.Second
	mirrorQueueSize   = 64
)

// Mirror replays committed directory changes on the service in order, from a
// single background goroutine. Observe never blocks: when the queue is full the
// change is dropped and logged. Failures are logged and dropped too; the local
// directory stays authoritative.
type Mirror struct {
	client *DirectoryClient
	log    logrus.FieldLogger
	ch     chan directory.Change
	wg     sync.WaitGroup
	once   sync.Once

	// remote maps a local id to the id the service assigned when the local
	// one was already taken there. Only the run goroutine touches it.
	remote map[int64]int64
}

// NewMirror starts the replay goroutine. Call Close to flush and stop it.
func NewMirror(ctx context.Context, client *DirectoryClient, log logrus.FieldLogger) *Mirror {
	m := newMirror(client, log, mirrorQueueSize)
	m.wg.Add(1)
	go m.run(ctx)
	return m
}

func newMirror(client *DirectoryClient, log logrus.FieldLogger, size int) *Mirror {
	return &Mirror{
		client: client,
		log:    log,
		ch:     make(chan directory.Change, size),
		remote: make(map[int64]int64),
	}
}

// Observe queues c for replay. It is meant to be passed to Manager.Subscribe
// and must not be called after Close.
func (m *Mirror) Observe(c directory.Change) {
	select {
	case m.ch <- c:
	default:
		m.log.WithFields(logrus.Fields{"op": c.Op, "id": c.User.ID}).Warn("mirror queue full, change dropped")
	}
}

// Close waits for queued changes to be replayed.
func (m *Mirror) Close() {
	m.once.Do(func() { close(m.ch) })
	m.wg.Wait()
}

func (m *Mirror) run(ctx context.Context) {
	defer m.wg.Done()
	for c := range m.ch {
		if err := m.apply(ctx, c); err != nil {
			m.log.WithError(err).WithFields(logrus.Fields{"op": c.Op, "id": c.User.ID}).Warn("mirror change failed")
		}
	}
}

// remoteID translates a local id into the id the service stores it under.
func (m *Mirror) remoteID(id int64) int64 {
	if r, ok := m.remote[id]; ok {
		return r
	}
	return id
}

// apply pushes one change. An add whose id is already taken on the service is
// created again under a service-assigned id, and later changes to that record
// follow the remapped id. An update of an id the service lacks becomes a create.
func (m *Mirror) apply(ctx context.Context, c directory.Change) error {
	ctx, cancel := context.WithTimeout(ctx, mirrorCallTimeout)
	defer cancel()

	local := c.User.ID
	u := c.User
	u.ID = m.remoteID(local)

	switch c.Op {
	case directory.OpAdded:
		delete(m.remote, local)
		u.ID = local
		_, err := m.client.CreateUser(ctx, u)
		if status.Code(err) != codes.AlreadyExists {
			return err
		}
		u.ID = 0
		created, err := m.client.CreateUser(ctx, u)
		if err != nil {
			return err
		}
		m.remote[local] = created.ID
		m.log.WithFields(logrus.Fields{"local_id": local, "remote_id": created.ID}).Info("mirror remapped taken id")
		return nil
	case directory.OpUpdated:
		_, err := m.client.UpdateUser(ctx, u)
		if status.Code(err) == codes.NotFound {
			_, err = m.client.CreateUser(ctx, u)
		}
		return err
	case directory.OpDeleted:
		delete(m.remote, local)
		return m.client.DeleteUser(ctx, u.ID)
	}
	return nil
}
