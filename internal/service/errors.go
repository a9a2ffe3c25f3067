package service

import (
	"errors"
	"fmt"
)

// Failures are classified by wrapping one of these two sentinels; use
// errors.Is to inspect them. Any other error is an infrastructure failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrPaymentRequired = errors.New("payment required")
)

var (
	ErrEnrollmentNotFound = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrTicketNotFound     = fmt.Errorf("ticket %w", ErrNotFound)
	ErrNoHotels           = fmt.Errorf("hotels %w", ErrNotFound)
	ErrHotelNotFound      = fmt.Errorf("hotel %w", ErrNotFound)
	ErrNoRooms            = fmt.Errorf("hotel rooms %w", ErrNotFound)

	ErrTicketNotPaid    = fmt.Errorf("%w: ticket is reserved", ErrPaymentRequired)
	ErrRemoteTicket     = fmt.Errorf("%w: ticket is remote", ErrPaymentRequired)
	ErrHotelNotIncluded = fmt.Errorf("%w: ticket does not include hotel", ErrPaymentRequired)
)
