package session

import (
	"fmt"

	"github.com/lexgrep/lexgrep/pkg/lexer"
	"github.com/lexgrep/lexgrep/pkg/matcher"
	"github.com/lexgrep/lexgrep/pkg/types"
)

// Fixed execution bounds. These guard the lexer and engine against runaway
// cost; they are not user-configurable.
const (
	MaxConcurrentMatches = 5000
	MaxTokenLength       = 5000
	GroupCap             = 10
)

// Run compiles every pattern in the config into a shared trie, executes it
// against the subject, and streams each completed match to sink. Any
// compilation failure aborts the run before execution: sink is never called
// and the error carries a human-readable description.
func (c Config) Run(sink func(types.Match)) error {
	return c.RunWithLogger(NoopLogger{}, sink)
}

// RunWithLogger is Run with construction and execution tracing routed to
// logger.
func (c Config) RunWithLogger(logger DebugLogger, sink func(types.Match)) error {
	if logger == nil {
		logger = NoopLogger{}
	}

	trie := matcher.NewTrie()
	for _, unit := range c.LHS {
		for _, pattern := range unit.Patterns {
			lx, err := c.lexerFor(true)
			if err != nil {
				return err
			}
			err = trie.AddPattern(
				[]byte(pattern),
				bytesValues(unit.Out),
				unit.Name,
				unit.Group,
				unit.Transform,
				lx,
			)
			if err != nil {
				logger.Log("pattern registration failed for %q: %v", unit.Name, err)
				return err
			}
		}
	}
	logger.Log("registered %d patterns", trie.Len())

	engine := matcher.New(trie, MaxConcurrentMatches, MaxTokenLength, GroupCap)
	lx, err := c.lexerFor(false)
	if err != nil {
		return err
	}

	total := 0
	err = engine.ProcessAndDrain([]byte(c.Subject), lx, func(m types.Match) {
		total++
		sink(m)
	})
	if err != nil {
		logger.Log("execution failed: %v", err)
		return err
	}
	logger.Log("execution complete: %d matches", total)
	return nil
}

// lexerFor selects the lexer variant for the config's language. The pattern
// compilation pass enables metacharacter recognition; the subject scanning
// pass disables it. The switch is exhaustive over the closed language set:
// adding a language must revisit this dispatch.
func (c Config) lexerFor(patternMode bool) (lexer.Lexer, error) {
	switch c.Language {
	case types.LangC, types.LangCpp, types.LangCSharp, types.LangJava:
		return lexer.NewCLike(false, patternMode, MaxTokenLength), nil
	case types.LangGo, types.LangJS, types.LangTS, types.LangKotlin:
		return lexer.NewCLike(true, patternMode, MaxTokenLength), nil
	case types.LangPython:
		return lexer.NewPythonLike(patternMode, MaxTokenLength), nil
	case types.LangRust:
		return lexer.NewRustLike(patternMode, MaxTokenLength), nil
	}
	return nil, fmt.Errorf("unsupported language %d", c.Language)
}

func bytesValues(in map[string]string) map[string][]byte {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]byte, len(in))
	for k, v := range in {
		out[k] = []byte(v)
	}
	return out
}
