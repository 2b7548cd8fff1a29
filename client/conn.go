package client

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/model"
)

const writeWait = time.Second

// Conn is the client side of the relay connection. Incoming is closed
// once the connection is gone.
type Conn struct {
	ws       *websocket.Conn
	Incoming chan model.ServerMessage
	outgoing chan model.ClientMessage
	done     chan struct{}
	close    sync.Once
	log      *log.Entry
}

func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Conn{
		ws:       ws,
		Incoming: make(chan model.ServerMessage, 32),
		outgoing: make(chan model.ClientMessage, 16),
		done:     make(chan struct{}),
		log:      log.WithField("server", url),
	}, nil
}

// Send queues m for the write loop. It reports false when the connection
// is closed or the queue is full.
func (c *Conn) Send(m model.ClientMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.outgoing <- m:
		return true
	default:
		c.log.Warn("Conn.Send queue full, dropped")
		return false
	}
}

func (c *Conn) Close() {
	c.close.Do(func() {
		close(c.done)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}

func (c *Conn) LoopChannelRead() {
	c.log.Info("Conn.LoopChannelRead STARTED")
	defer func() {
		close(c.Incoming)
		c.Close()
		c.log.Info("Conn.LoopChannelRead ENDED")
	}()
	for {
		_, r, err := c.ws.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warnf("Conn.LoopChannelRead %v", err)
			}
			return
		}
		m, err := model.DecodeServerMessage(r)
		if err != nil {
			c.log.Warnf("Conn.LoopChannelRead cant decode %v", err)
			return
		}
		select {
		case c.Incoming <- m:
		case <-c.done:
			return
		}
	}
}

// LoopChannelWrite is the only writer on the connection.
func (c *Conn) LoopChannelWrite() {
	c.log.Info("Conn.LoopChannelWrite STARTED")
	defer func() {
		c.ws.Close()
		c.log.Info("Conn.LoopChannelWrite ENDED")
	}()
	for {
		select {
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case m := <-c.outgoing:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.ws.NextWriter(websocket.BinaryMessage)
			if err != nil {
				c.log.Warnf("Conn.LoopChannelWrite cant get writer %v", err)
				return
			}
			if err := model.EncodeClientMessage(w, m); err != nil {
				c.log.Warnf("Conn.LoopChannelWrite cant encode %v", err)
				return
			}
			if err := w.Close(); err != nil {
				c.log.Warnf("Conn.LoopChannelWrite cant flush %v", err)
				return
			}
		}
	}
}
