// Package transport serves the validator over a persistent websocket
// connection: clients stream query documents to validate against a
// fixed schema and get back a result per document, without paying for
// a new HTTP round trip each time.
package transport

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kirra-gql/validate/internal/jsondoc"
	"github.com/kirra-gql/validate/schema"
	"github.com/kirra-gql/validate/validator"
)

const connectionSendBufferSize = 100

// Connection represents one server-side validation websocket
// connection. It owns the socket from the point Serve is called until
// the connection closes.
type Connection struct {
	Schema            *schema.Schema
	SchemaFingerprint string
	Cache             *ResultCache
	Logger            logrus.FieldLogger

	conn              *websocket.Conn
	readLoopDone      chan struct{}
	writeLoopDone     chan struct{}
	outgoing          chan *websocket.PreparedMessage
	close             chan struct{}
	closeReceived     chan struct{}
	closeMessage      chan []byte
	beginClosingOnce  sync.Once
	finishClosingOnce sync.Once
}

// Serve takes ownership of conn and begins reading and writing to it.
// It returns once the connection has fully closed.
func (c *Connection) Serve(conn *websocket.Conn) {
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	if c.Cache == nil {
		c.Cache = NewResultCache()
	}

	c.conn = conn
	c.readLoopDone = make(chan struct{})
	c.writeLoopDone = make(chan struct{})
	c.outgoing = make(chan *websocket.PreparedMessage, connectionSendBufferSize)
	c.close = make(chan struct{})
	c.closeReceived = make(chan struct{})
	c.closeMessage = make(chan []byte, 1)

	conn.SetCloseHandler(func(code int, text string) error {
		select {
		case <-c.closeReceived:
		default:
			close(c.closeReceived)
		}
		return nil
	})

	go c.readLoop()
	go c.writeLoop()

	<-c.readLoopDone
	<-c.writeLoopDone
}

// Close closes the connection. It must not be called from within a
// read/write loop goroutine's own call stack.
func (c *Connection) Close() error {
	c.beginClosing(websocket.CloseNormalClosure, "close requested by application")
	c.finishClosing()
	return nil
}

func (c *Connection) sendMessage(ctx context.Context, msg *Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "error marshaling message")
	}
	prepared, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		return errors.Wrap(err, "error preparing message")
	}
	select {
	case c.outgoing <- prepared:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (c *Connection) readLoop() {
	defer close(c.readLoopDone)
	defer c.beginClosing(websocket.CloseInternalServerErr, "read error")

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				select {
				case <-c.close:
				default:
					c.Logger.WithError(err).Error("websocket read error")
				}
			}
			return
		}
		c.handleMessage(context.Background(), p)
	}
}

func (c *Connection) handleMessage(ctx context.Context, data []byte) {
	var msg Message
	if err := jsoniter.Unmarshal(data, &msg); err != nil {
		// ignore malformed frames
		return
	}

	switch msg.Type {
	case MessageTypeValidate:
		c.handleValidate(ctx, msg.Id, msg.Payload)
	default:
		// ignore unknown message types
	}
}

func (c *Connection) handleValidate(ctx context.Context, id string, payload []byte) {
	var p ValidatePayload
	if err := jsoniter.Unmarshal(payload, &p); err != nil {
		c.sendResult(ctx, id, "", errors.Wrap(err, "malformed validate payload"))
		return
	}

	cached, ok, key := c.Cache.Lookup(c.SchemaFingerprint, p.Document)
	if ok {
		c.sendResultMessage(ctx, id, cached)
		return
	}

	doc, err := jsondoc.DecodeDocument(bytes.NewReader(p.Document))
	if err != nil {
		c.sendResult(ctx, id, "", errors.Wrap(err, "malformed document"))
		return
	}

	validationErr := validator.Validate(c.Schema, doc)
	message := ""
	if validationErr != nil {
		message = validationErr.Error()
	}

	c.Cache.Store(key, message)
	c.sendResultMessage(ctx, id, message)
}

func (c *Connection) sendResultMessage(ctx context.Context, id string, message string) {
	payload, err := jsoniter.Marshal(&ResultPayload{Valid: message == "", Error: message})
	if err != nil {
		c.Logger.WithError(err).Error("error marshaling validation result")
		return
	}
	if err := c.sendMessage(ctx, &Message{Id: id, Type: MessageTypeResult, Payload: payload}); err != nil {
		c.Logger.WithError(err).Error("error sending validation result")
	}
}

func (c *Connection) sendResult(ctx context.Context, id string, message string, err error) {
	if err != nil {
		c.Logger.WithError(err).Warn("rejecting validate message")
		if message == "" {
			message = err.Error()
		}
	}
	c.sendResultMessage(ctx, id, message)
}

var keepAlivePreparedMessage *websocket.PreparedMessage

func init() {
	data, err := jsoniter.Marshal(&Message{Type: MessageTypeKeepAlive})
	if err != nil {
		panic(errors.Wrap(err, "error marshaling keep-alive message"))
	}
	prepared, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		panic(errors.Wrap(err, "error preparing keep-alive message"))
	}
	keepAlivePreparedMessage = prepared
}

func (c *Connection) writeLoop() {
	defer c.finishClosing()
	defer close(c.writeLoopDone)
	defer c.conn.Close()

	keepAliveTicker := time.NewTicker(15 * time.Second)
	defer keepAliveTicker.Stop()

	for {
		var msg *websocket.PreparedMessage
		select {
		case outgoing := <-c.outgoing:
			msg = outgoing
		case <-keepAliveTicker.C:
			msg = keepAlivePreparedMessage
		case closeMsg := <-c.closeMessage:
			for done := false; !done; {
				select {
				case outgoing := <-c.outgoing:
					c.conn.SetWriteDeadline(time.Now().Add(time.Second))
					if err := c.conn.WritePreparedMessage(outgoing); err != nil {
						done = true
					}
				default:
					done = true
				}
			}
			if err := c.conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
				c.Logger.WithError(err).Error("websocket control write error")
			}
			select {
			case <-c.closeReceived:
			case <-c.readLoopDone:
			case <-time.After(time.Second):
			}
			return
		case <-c.closeReceived:
			if err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "close requested by client")); err != nil {
				c.Logger.WithError(err).Error("websocket control write error")
			}
			return
		}

		c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.conn.WritePreparedMessage(msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseGoingAway) && err != websocket.ErrCloseSent {
				c.Logger.WithError(err).Error("websocket write error")
			}
			return
		}
	}
}

func (c *Connection) beginClosing(code int, text string) {
	c.beginClosingOnce.Do(func() {
		c.closeMessage <- websocket.FormatCloseMessage(code, text)
		close(c.close)
	})
}

func (c *Connection) finishClosing() {
	c.finishClosingOnce.Do(func() {})
}
