package service

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateTicketNumber produces a human-presentable ticket code of the form
// TKT-<base36 millis>-<base36 suffix>, upper-cased. Uniqueness is not
// re-checked against the store; the ticket_number UNIQUE constraint is the
// backstop and CreateTicket retries on collision.
func generateTicketNumber() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}

	return strings.ToUpper("TKT-" + timestamp + "-" + string(suffix))
}
