package schema

// reservedWords are keywords of the generated binding languages and the
// storage engine. No user identifier may take one of them.
var reservedWords = map[string]struct{}{
	"and": {}, "as": {}, "assert": {}, "async": {}, "await": {},
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"constraint": {}, "continue": {}, "debugger": {}, "default": {}, "delete": {},
	"do": {}, "done": {}, "downto": {}, "else": {}, "enum": {},
	"exception": {}, "export": {}, "extends": {}, "external": {}, "false": {},
	"finally": {}, "for": {}, "fun": {}, "function": {}, "if": {},
	"implements": {}, "import": {}, "in": {}, "include": {}, "instanceof": {},
	"interface": {}, "lazy": {}, "let": {}, "match": {}, "method": {},
	"module": {}, "mutable": {}, "new": {}, "nonrec": {}, "null": {},
	"of": {}, "open": {}, "or": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "rec": {}, "return": {}, "sig": {},
	"static": {}, "struct": {}, "super": {}, "switch": {}, "then": {},
	"this": {}, "throw": {}, "to": {}, "true": {}, "try": {},
	"type": {}, "typeof": {}, "val": {}, "var": {}, "virtual": {},
	"void": {}, "when": {}, "while": {}, "with": {}, "yield": {},
}

// reservedEnumNames are type names generated by the indexer runtime itself.
var reservedEnumNames = map[string]struct{}{
	"EventType":    {},
	"ContractType": {},
	"EntityType":   {},
}

// IsReservedWord reports if name is a reserved keyword.
func IsReservedWord(name string) bool {
	_, ok := reservedWords[name]
	return ok
}

// IsReservedEnumName reports if name is an enum name used internally.
func IsReservedEnumName(name string) bool {
	_, ok := reservedEnumNames[name]
	return ok
}
