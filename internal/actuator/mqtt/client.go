// internal/actuator/mqtt/client.go
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/haptic-monitor/internal/actuator"
)

// publisher is the part of mqtt.Client the actuator needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Client publishes intensities to a device bridge over MQTT.
// Topic: <prefix>/<device>/intensity, payload: decimal intensity in [0,1].
// Messages are retained so a bridge that reconnects picks up the current level.
type Client struct {
	client  mqtt.Client
	pub     publisher
	prefix  string
	timeout time.Duration
}

type Config struct {
	Broker      string // tcp://host:port
	ClientID    string
	TopicPrefix string
	Timeout     time.Duration
}

// New connects to the broker. Connection loss is logged and handled by auto-reconnect.
func New(cfg Config) (*Client, error) {
	if cfg.Broker == "" {
		return nil, errors.New("actuator mqtt: broker required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("haptic-monitor-%d", time.Now().Unix())
	}
	opts.SetClientID(clientID)

	opts.SetConnectTimeout(cfg.Timeout)
	opts.SetWriteTimeout(cfg.Timeout)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("actuator mqtt: connection lost (broker=%s): %v", cfg.Broker, err)
	})

	c := mqtt.NewClient(opts)

	token := c.Connect()
	if !token.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("actuator mqtt: connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("actuator mqtt: connect to %s: %w", cfg.Broker, err)
	}

	return &Client{
		client:  c,
		pub:     c,
		prefix:  cfg.TopicPrefix,
		timeout: cfg.Timeout,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	c.client.Disconnect(250)
	return nil
}

func (c *Client) topic(device uint32) string {
	return fmt.Sprintf("%s/%d/intensity", c.prefix, device)
}

// Vibrate publishes the intensity and waits for the broker to acknowledge it.
func (c *Client) Vibrate(ctx context.Context, device uint32, intensity float64) error {
	if err := actuator.CheckIntensity(intensity); err != nil {
		return err
	}

	payload := strconv.FormatFloat(intensity, 'f', 3, 64)
	token := c.pub.Publish(c.topic(device), 1, true, payload)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-timer.C:
		return fmt.Errorf("actuator mqtt: publish to %s timed out", c.topic(device))
	case <-ctx.Done():
		return ctx.Err()
	}
}
