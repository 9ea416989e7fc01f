package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixos dos números de documento.
const (
	orderNumberPrefix = "OS"
	quoteNumberPrefix = "ORC"
)

// maxNumberAttempts tentativas de geração antes de desistir por colisão de número.
const maxNumberAttempts = 3

// documentNumber gera um número legível tipo "OS-20260901-A1B2C3": prefixo,
// data UTC e sufixo de 6 caracteres derivado de um UUID. A unicidade é garantida
// pela constraint do banco; o chamador re-gera em caso de duplicidade.
func documentNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102"), suffix)
}
