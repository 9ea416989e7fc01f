package workflow

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentNumber_Formato(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

	os := documentNumber(orderNumberPrefix, now)
	assert.Regexp(t, regexp.MustCompile(`^OS-20260901-[0-9A-F]{6}$`), os)

	orc := documentNumber(quoteNumberPrefix, now)
	assert.Regexp(t, regexp.MustCompile(`^ORC-20260901-[0-9A-F]{6}$`), orc)
}

func TestDocumentNumber_DataEmUTC(t *testing.T) {
	// 23h em São Paulo já é o dia seguinte em UTC.
	sp := time.FixedZone("America/Sao_Paulo", -3*60*60)
	now := time.Date(2026, 9, 1, 23, 0, 0, 0, sp)

	n := documentNumber(orderNumberPrefix, now)
	assert.Contains(t, n, "-20260902-")
}

func TestDocumentNumber_SufixosVariam(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[documentNumber(orderNumberPrefix, now)] = true
	}
	assert.Greater(t, len(seen), 1, "sufixo aleatório deve variar entre chamadas")
}
