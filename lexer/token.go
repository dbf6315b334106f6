package lexer

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Int
	Float
	Duration
	String
	Bool
	VoidKw

	// Keywords
	KwImport
	KwBifurcate
	KwAth // ~ATH marker
	KwExecute
	KwDie
	KwThis
	KwTimer
	KwProcess
	KwConnection
	KwWatcher
	KwBirth
	KwEntomb
	KwWith
	KwShould
	KwLest
	KwRite
	KwBequeath
	KwAttempt
	KwSalvage
	KwCondemn
	KwAnd
	KwOr
	KwNot

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Colon
	Semicolon
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	AndAnd
	OrOr
	Bang
)

var keywords = map[string]Kind{
	"import":     KwImport,
	"bifurcate":  KwBifurcate,
	"EXECUTE":    KwExecute,
	"DIE":        KwDie,
	"THIS":       KwThis,
	"timer":      KwTimer,
	"process":    KwProcess,
	"connection": KwConnection,
	"watcher":    KwWatcher,
	"BIRTH":      KwBirth,
	"ENTOMB":     KwEntomb,
	"WITH":       KwWith,
	"ALIVE":      Bool,
	"DEAD":       Bool,
	"VOID":       VoidKw,
	"SHOULD":     KwShould,
	"LEST":       KwLest,
	"RITE":       KwRite,
	"BEQUEATH":   KwBequeath,
	"ATTEMPT":    KwAttempt,
	"SALVAGE":    KwSalvage,
	"CONDEMN":    KwCondemn,
	"AND":        KwAnd,
	"OR":         KwOr,
	"NOT":        KwNot,
}

// DurationUnit is the unit suffix attached to an integer duration literal.
type DurationUnit byte

const (
	UnitMs DurationUnit = iota
	UnitS
	UnitM
	UnitH
)

// Token is one lexical unit with its source position.
type Token struct {
	Kind   Kind
	Text   string // raw text for identifiers/keywords, decoded value for strings
	Int    int64
	Float  float64
	Bool   bool
	Line   int
	Col    int
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Duration:
		return "duration"
	case String:
		return "string"
	case Bool:
		return "boolean"
	case VoidKw:
		return "VOID"
	case KwAth:
		return "~ATH"
	case Semicolon:
		return ";"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	default:
		for text, kk := range keywords {
			if kk == k {
				return text
			}
		}
		return "token"
	}
}
