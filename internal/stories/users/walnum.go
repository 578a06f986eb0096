package users

import "crypto/rand"

const (
	walNumAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	walNumLength   = 8
)

// NewWalNum генерирует номер счёта: 8 символов [0-9A-Z].
// Уникальность по базе не проверяется (см. DESIGN.md, открытый вопрос).
func NewWalNum() string {
	buf := make([]byte, walNumLength)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = walNumAlphabet[int(buf[i])%len(walNumAlphabet)]
	}
	return string(buf)
}
