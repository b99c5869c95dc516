package env

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

const Prefix = "KBC_CONFORM_"

// NamingConvention converts flag names to ENV variable names.
type NamingConvention struct {
	prefix string
}

func NewNamingConvention(prefix string) *NamingConvention {
	return &NamingConvention{prefix: prefix}
}

// FlagToEnv converts flag name to ENV variable name,
// for example "log-file" -> "KBC_CONFORM_LOG_FILE".
func (n *NamingConvention) FlagToEnv(flagName string) string {
	if strings.TrimSpace(flagName) == "" {
		panic(errors.New("flag name cannot be empty"))
	}
	return n.prefix + strcase.ToScreamingSnake(flagName)
}

// Files which are loaded from the working directory, the first one has the highest priority.
func Files() []string {
	return []string{".env.local", ".env"}
}
