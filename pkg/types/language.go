package types

import "fmt"

// Language identifies the source language of a subject text.
//
// The set is closed: every value maps to exactly one lexer family and one
// display name. The ordinal values are part of the share-token wire format
// and must never be reordered.
type Language int

const (
	LangC Language = iota
	LangCpp
	LangCSharp
	LangGo
	LangJava
	LangJS
	LangKotlin
	LangPython
	LangRust
	LangTS
)

// Languages returns all supported languages in wire order.
func Languages() []Language {
	return []Language{
		LangC, LangCpp, LangCSharp, LangGo, LangJava,
		LangJS, LangKotlin, LangPython, LangRust, LangTS,
	}
}

// Display returns the editor-facing language identifier.
func (l Language) Display() string {
	switch l {
	case LangC:
		return "c"
	case LangCpp:
		return "cpp"
	case LangCSharp:
		return "csharp"
	case LangGo:
		return "go"
	case LangJava:
		return "java"
	case LangJS:
		return "javascript"
	case LangKotlin:
		return "kotlin"
	case LangPython:
		return "python"
	case LangRust:
		return "rust"
	case LangTS:
		return "typescript"
	}
	return ""
}

// Tag returns the short internal language tag.
func (l Language) Tag() string {
	switch l {
	case LangC:
		return "c"
	case LangCpp:
		return "cpp"
	case LangCSharp:
		return "csharp"
	case LangGo:
		return "go"
	case LangJava:
		return "java"
	case LangJS:
		return "js"
	case LangKotlin:
		return "kotlin"
	case LangPython:
		return "py"
	case LangRust:
		return "rust"
	case LangTS:
		return "ts"
	}
	return ""
}

func (l Language) String() string {
	return l.Tag()
}

// ParseLanguage parses either a short tag ("py") or a display identifier
// ("python") into a Language. Unrecognized input is an error.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "c":
		return LangC, nil
	case "cpp", "c++":
		return LangCpp, nil
	case "csharp", "c#":
		return LangCSharp, nil
	case "go":
		return LangGo, nil
	case "java":
		return LangJava, nil
	case "js", "javascript":
		return LangJS, nil
	case "kotlin":
		return LangKotlin, nil
	case "py", "python":
		return LangPython, nil
	case "rust":
		return LangRust, nil
	case "ts", "typescript":
		return LangTS, nil
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

// Valid reports whether l is one of the enumerated languages.
func (l Language) Valid() bool {
	return l >= LangC && l <= LangTS
}
