package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DriverMemory = "memory"
	DriverNATS   = "nats"
	DriverNSQ    = "nsq"
	DriverKafka  = "kafka"
)

var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions holds the settings of every driver. Only the one named by
// Driver is read.
type FactoryOptions struct {
	NATS  NATSConfig
	NSQ   NSQConfig
	Kafka KafkaConfig
}

// NewFromDriver builds the client named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
