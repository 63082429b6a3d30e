package openai

import (
	"time"

	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/llm"
	"github.com/samber/do/v2"
)

const llmRequestTimeout = 3 * time.Minute

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (llm.Completer, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCompleter(c.OpenAIAPIKey, c.OpenAIModel, c.OpenAIBaseURL, llmRequestTimeout), nil
	})
}
