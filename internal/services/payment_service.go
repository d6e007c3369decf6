package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"barberbook/internal/domain"
	"barberbook/internal/utils"
)

// Card carries the payment details supplied at confirmation. Expiry is MM/YY.
type Card struct {
	Number string `json:"card_number"`
	CVC    string `json:"cvc"`
	Expiry string `json:"expiry"`
}

// CardAuthorizer is the external yes/no payment oracle.
type CardAuthorizer interface {
	Authorize(ctx context.Context, card Card) (bool, error)
}

// AutoApprove authorizes every card that passed the format checks. Stands in
// for a real acquirer in development and tests.
type AutoApprove struct{}

func (AutoApprove) Authorize(ctx context.Context, card Card) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
		return true, nil
	}
}

// PaymentService validates card formats locally and delegates the decision to
// the authorizer under a bounded timeout. A timeout or error fails closed as
// ErrPaymentRejected; the hold stays intact until its own TTL.
type PaymentService struct {
	Authorizer CardAuthorizer
	Timeout    time.Duration
	RequestID  string
	Now        func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ValidateFormat checks card number, cvc, and expiry shapes. Malformed input
// is a ValidationError, recovered locally by the caller.
func (s PaymentService) ValidateFormat(card Card) error {
	number := strings.TrimSpace(card.Number)
	if len(number) < 13 || !allDigits(number) {
		return domain.ValidationError{Field: "card_number", Msg: "must be numeric, at least 13 digits"}
	}

	cvc := strings.TrimSpace(card.CVC)
	if len(cvc) != 3 || !allDigits(cvc) {
		return domain.ValidationError{Field: "cvc", Msg: "must be exactly 3 digits"}
	}

	month, year, ok := splitExpiry(card.Expiry)
	if !ok || month < 1 || month > 12 {
		return domain.ValidationError{Field: "expiry", Msg: "must be MM/YY with a valid month"}
	}
	if year < s.now().Year()%100 {
		return domain.ValidationError{Field: "expiry", Msg: "card expired"}
	}
	return nil
}

// Charge runs the full oracle call: format checks first, then the bounded
// authorizer decision.
func (s PaymentService) Charge(ctx context.Context, card Card) error {
	if err := s.ValidateFormat(card); err != nil {
		return err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	authorizer := s.Authorizer
	if authorizer == nil {
		authorizer = AutoApprove{}
	}

	ok, err := authorizer.Authorize(ctx, card)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "authorize", "oracle failure: "+err.Error())
		return domain.ErrPaymentRejected
	}
	if !ok {
		return domain.ErrPaymentRejected
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitExpiry(raw string) (month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return m, y, true
}
