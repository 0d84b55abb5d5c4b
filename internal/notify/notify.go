// Package notify turns booking events into passenger notifications.
// Delivery is a stub: events are logged against the passenger's phone
// number, which is the only contact the reservation system stores.
package notify

import (
	"context"

	"github.com/Domenick1991/airreservation/internal/kafka"
	"github.com/Domenick1991/airreservation/pkg/logger"
)

type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("sending booking notification",
		"phone", event.PhoneNumber,
		"passenger", event.PassengerName+" "+event.PassengerSurname,
		"type", event.Type,
		"flight", event.FlightNumber,
		"seat", event.SeatNumber,
		"reference", event.Reference,
	)
	return nil
}
