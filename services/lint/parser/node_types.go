package parser

// JavaScript Tree-sitter Node Types
//
// This file lists the tree-sitter-javascript node types the ESTree builder
// maps. Types not listed here become estree.Unknown nodes with their named
// children preserved.
//
// Reference: https://github.com/tree-sitter/tree-sitter-javascript

const (
	// Top-level nodes
	tsProgram = "program"
	tsComment = "comment"
	tsError   = "ERROR"

	// Identifiers
	tsIdentifier                       = "identifier"
	tsPropertyIdentifier               = "property_identifier"
	tsPrivatePropertyIdentifier        = "private_property_identifier"
	tsShorthandPropertyIdentifier      = "shorthand_property_identifier"
	tsShorthandPropertyIdentifierPatrn = "shorthand_property_identifier_pattern"
	tsStatementIdentifier              = "statement_identifier"
	tsThis                             = "this"
	tsSuper                            = "super"
	tsUndefined                        = "undefined"

	// Literals
	tsString         = "string"
	tsStringFragment = "string_fragment"
	tsEscapeSequence = "escape_sequence"
	tsTemplateString = "template_string"
	tsTemplateSubst  = "template_substitution"
	tsNumber         = "number"
	tsTrue           = "true"
	tsFalse          = "false"
	tsNull           = "null"
	tsRegex          = "regex"

	// Member and call expressions
	tsMemberExpression    = "member_expression"
	tsSubscriptExpression = "subscript_expression"
	tsCallExpression      = "call_expression"
	tsNewExpression       = "new_expression"
	tsArguments           = "arguments"
	tsOptionalChain       = "optional_chain"

	// Objects, arrays and patterns
	tsObject                  = "object"
	tsObjectPattern           = "object_pattern"
	tsPair                    = "pair"
	tsPairPattern             = "pair_pattern"
	tsObjectAssignmentPattern = "object_assignment_pattern"
	tsComputedPropertyName    = "computed_property_name"
	tsArray                   = "array"
	tsArrayPattern            = "array_pattern"
	tsAssignmentPattern       = "assignment_pattern"
	tsRestPattern             = "rest_pattern"
	tsSpreadElement           = "spread_element"

	// Operators
	tsAssignmentExpression          = "assignment_expression"
	tsAugmentedAssignmentExpression = "augmented_assignment_expression"
	tsBinaryExpression              = "binary_expression"
	tsUnaryExpression               = "unary_expression"
	tsUpdateExpression              = "update_expression"
	tsTernaryExpression             = "ternary_expression"
	tsSequenceExpression            = "sequence_expression"
	tsParenthesizedExpression       = "parenthesized_expression"
	tsAwaitExpression               = "await_expression"
	tsYieldExpression               = "yield_expression"

	// Declarations
	tsLexicalDeclaration   = "lexical_declaration"
	tsVariableDeclaration  = "variable_declaration"
	tsVariableDeclarator   = "variable_declarator"
	tsFunctionDeclaration  = "function_declaration"
	tsGeneratorFunctionDcl = "generator_function_declaration"
	tsFunctionExpression   = "function_expression"
	tsFunction             = "function" // pre-0.21 grammar name for function expressions
	tsGeneratorFunction    = "generator_function"
	tsArrowFunction        = "arrow_function"
	tsFormalParameters     = "formal_parameters"

	// Classes
	tsClassDeclaration = "class_declaration"
	tsClass            = "class"
	tsClassHeritage    = "class_heritage"
	tsClassBody        = "class_body"
	tsMethodDefinition = "method_definition"
	tsFieldDefinition  = "field_definition"

	// Statements
	tsStatementBlock      = "statement_block"
	tsExpressionStatement = "expression_statement"
	tsReturnStatement     = "return_statement"
	tsIfStatement         = "if_statement"
	tsElseClause          = "else_clause"
	tsImportStatement     = "import_statement"
	tsExportStatement     = "export_statement"

	// Keywords and punctuation inspected as anonymous children
	tsAsync    = "async"
	tsStatic   = "static"
	tsGet      = "get"
	tsSet      = "set"
	tsStar     = "*"
	tsComma    = ","
	tsDefault  = "default"
	tsOptional = "?."
)

// logicalOperators are binary operators that ESTree models as
// LogicalExpression.
var logicalOperators = map[string]bool{
	"&&": true,
	"||": true,
	"??": true,
}
