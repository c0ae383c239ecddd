package lexer

// TokenType identifies the lexical category of a located token.
type TokenType int

const (
	TokenEnd TokenType = iota
	TokenNewline
	TokenBlank
	TokenWord
	TokenSet
	TokenGet
	TokenSym
	TokenApostrophe
	TokenBlockBegin
	TokenBlockEnd
	TokenGroupBegin
	TokenGroupEnd
	TokenGetBlockBegin
	TokenGetGroupBegin
	TokenSymBlockBegin
	TokenSymGroupBegin
	TokenPath
	TokenInteger
	TokenDecimal
	TokenPercent
	TokenMoney
	TokenTime
	TokenDate
	TokenChar
	TokenString
	TokenBinary
	TokenPair
	TokenTuple
	TokenFile
	TokenEmail
	TokenURL
	TokenIssue
	TokenTag
	TokenConstruct
)

var tokenNames = [...]string{
	TokenEnd:           "end-of-script",
	TokenNewline:       "newline",
	TokenBlank:         "blank",
	TokenWord:          "word",
	TokenSet:           "set-word",
	TokenGet:           "get-word",
	TokenSym:           "sym-word",
	TokenApostrophe:    "quote",
	TokenBlockBegin:    "block",
	TokenBlockEnd:      "end-block",
	TokenGroupBegin:    "group",
	TokenGroupEnd:      "end-group",
	TokenGetBlockBegin: "get-block",
	TokenGetGroupBegin: "get-group",
	TokenSymBlockBegin: "sym-block",
	TokenSymGroupBegin: "sym-group",
	TokenPath:          "path",
	TokenInteger:       "integer",
	TokenDecimal:       "decimal",
	TokenPercent:       "percent",
	TokenMoney:         "money",
	TokenTime:          "time",
	TokenDate:          "date",
	TokenChar:          "char",
	TokenString:        "string",
	TokenBinary:        "binary",
	TokenPair:          "pair",
	TokenTuple:         "tuple",
	TokenFile:          "file",
	TokenEmail:         "email",
	TokenURL:           "url",
	TokenIssue:         "issue",
	TokenTag:           "tag",
	TokenConstruct:     "construct",
}

// String returns the display name used in syntax error messages.
func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

// Token is one located token. Begin and End index into the state's
// current source fragment; End is the first byte past the token.
type Token struct {
	Type  TokenType
	Begin int
	End   int
}
