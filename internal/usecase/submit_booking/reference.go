package submit_booking

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomReferenceGenerator формирует номера вида NFA20261019K7Q2ZD:
// префикс, дата доставки и случайный суффикс [A-Z0-9]
type RandomReferenceGenerator struct {
	prefix string
}

// NewRandomReferenceGenerator создает генератор; пустой префикс заменяется на NFA
func NewRandomReferenceGenerator(prefix string) *RandomReferenceGenerator {
	if prefix == "" {
		prefix = domain.ReferencePrefix
	}
	return &RandomReferenceGenerator{prefix: prefix}
}

func (g *RandomReferenceGenerator) Generate(date time.Time) (string, error) {
	suffix, err := randomSuffix(domain.ReferenceSuffixLength)
	if err != nil {
		return "", err
	}
	return g.prefix + date.Format(domain.RefDateFormat) + suffix, nil
}

func randomSuffix(n int) (string, error) {
	// 252 = 7 * 36, байты выше отбрасываются, чтобы символы были равновероятны
	const limit = 252

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, referenceAlphabet[int(b)%len(referenceAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
