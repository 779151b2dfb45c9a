package bus

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("bus: not connected")

type Publisher struct {
	Conn *nats.Conn
}

func NewPublisher(url string, opts ...nats.Option) (*Publisher, error) {
	base := []nats.Option{
		nats.Name("motor-prediction-api"),
		nats.Timeout(5 * time.Second),
		nats.MaxReconnects(-1),
	}
	conn, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Publisher{Conn: conn}, nil
}

func (p *Publisher) Close() {
	if p.Conn != nil {
		_ = p.Conn.Drain()
		p.Conn.Close()
	}
}

func (p *Publisher) Publish(subject string, payload any) error {
	if p == nil || p.Conn == nil {
		return ErrNotConnected
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.Conn.Publish(subject, data)
}
