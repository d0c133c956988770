package parser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/treequery/services/lint/estree"
)

const languageJavaScript = "javascript"

// JavaScriptParser loads JavaScript source into ESTree form.
//
// Description:
//
//	JavaScriptParser uses tree-sitter to parse JavaScript source and converts
//	the concrete syntax tree into estree.Node values with parent links wired,
//	ready for the treequery helpers. Syntax errors do not fail the parse: the
//	broken regions are kept as estree.Unknown nodes and listed in
//	ParseResult.Errors.
//
// Thread Safety:
//
//	JavaScriptParser is safe for concurrent use. Each Parse call creates its
//	own tree-sitter parser instance.
//
// Example:
//
//	p := NewJavaScriptParser()
//	result, err := p.Parse(ctx, content, "app.js")
//	if err != nil {
//	    return fmt.Errorf("parse: %w", err)
//	}
//	stmts := treequery.FindNodes(result.Program.Statements, estree.ExpressionStatement)
type JavaScriptParser struct {
	options JavaScriptParserOptions
}

// JavaScriptParserOptions configures JavaScriptParser behavior.
type JavaScriptParserOptions struct {
	// MaxFileSize is the maximum file size in bytes to parse.
	// Files larger than this return ErrFileTooLarge.
	// Default: 10MB
	MaxFileSize int

	// MaxSyntaxErrors caps the number of entries in ParseResult.Errors.
	// Default: 100
	MaxSyntaxErrors int

	// Logger receives debug output. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultJavaScriptParserOptions returns the default options.
func DefaultJavaScriptParserOptions() JavaScriptParserOptions {
	return JavaScriptParserOptions{
		MaxFileSize:     10 * 1024 * 1024, // 10MB
		MaxSyntaxErrors: 100,
		Logger:          slog.Default(),
	}
}

// JavaScriptParserOption is a functional option for configuring JavaScriptParser.
type JavaScriptParserOption func(*JavaScriptParserOptions)

// WithMaxFileSize sets the maximum file size for parsing.
func WithMaxFileSize(size int) JavaScriptParserOption {
	return func(o *JavaScriptParserOptions) {
		o.MaxFileSize = size
	}
}

// WithMaxSyntaxErrors caps the number of reported syntax errors.
func WithMaxSyntaxErrors(n int) JavaScriptParserOption {
	return func(o *JavaScriptParserOptions) {
		o.MaxSyntaxErrors = n
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) JavaScriptParserOption {
	return func(o *JavaScriptParserOptions) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// NewJavaScriptParser creates a new JavaScriptParser with the given options.
//
// Example:
//
//	p := NewJavaScriptParser(
//	    WithMaxFileSize(5 * 1024 * 1024),
//	    WithLogger(logger),
//	)
func NewJavaScriptParser(opts ...JavaScriptParserOption) *JavaScriptParser {
	options := DefaultJavaScriptParserOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &JavaScriptParser{options: options}
}

// Language returns the language name for this parser.
func (p *JavaScriptParser) Language() string {
	return languageJavaScript
}

// Extensions returns the file extensions this parser handles.
func (p *JavaScriptParser) Extensions() []string {
	return []string{".js", ".mjs", ".cjs", ".jsx"}
}

// Parse converts JavaScript source into an ESTree Program.
//
// Description:
//
//	Validates the content, parses it with tree-sitter, builds the ESTree and
//	wires parent links. Records parse metrics and a "JavaScriptParser.Parse"
//	span.
//
// Inputs:
//
//	ctx      - Context for cancellation. Checked before and after parsing.
//	content  - Raw JavaScript source bytes. Must be valid UTF-8.
//	filePath - Path to the file, used for error messages.
//
// Outputs:
//
//	*ParseResult - Program and metadata. Never nil on success.
//	error        - Non-nil only for complete failures: ErrFileTooLarge,
//	               ErrInvalidContent, ErrContextCanceled or ErrParseFailed,
//	               wrapped in a *ParseError.
//
// Thread Safety:
//
//	This method is safe for concurrent use.
func (p *JavaScriptParser) Parse(ctx context.Context, content []byte, filePath string) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, WrapParseError(canceledError("before start", err), filePath)
	}

	ctx, span := startParseSpan(ctx, filePath, len(content))
	defer span.End()
	start := time.Now()

	result, err := p.parse(ctx, content, filePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordParseMetrics(ctx, time.Since(start), 0, false)
		return nil, WrapParseError(err, filePath)
	}

	setParseSpanResult(span, result.NodeCount, len(result.Errors))
	recordParseMetrics(ctx, time.Since(start), result.NodeCount, true)

	p.options.Logger.Debug("parsed javascript file",
		slog.String("file", filePath),
		slog.Int("nodes", result.NodeCount),
		slog.Int("syntax_errors", len(result.Errors)),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (p *JavaScriptParser) parse(ctx context.Context, content []byte, filePath string) (*ParseResult, error) {
	if len(content) > p.options.MaxFileSize {
		return nil, fmt.Errorf("%d bytes exceeds limit of %d: %w", len(content), p.options.MaxFileSize, ErrFileTooLarge)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("not valid UTF-8: %w", ErrInvalidContent)
	}

	hash := sha256.Sum256(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, canceledError("during tree-sitter", ctxErr)
		}
		return nil, fmt.Errorf("tree-sitter: %w: %w", ErrParseFailed, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree: %w", ErrParseFailed)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, canceledError("after tree-sitter", err)
	}

	root := tree.RootNode()
	builder := newESBuilder(content)
	program := builder.build(root)
	if program == nil || program.Type != estree.Program {
		return nil, fmt.Errorf("root is %q, not a program: %w", root.Type(), ErrParseFailed)
	}
	estree.SetParents(program)

	errs := collectSyntaxErrors(root, filePath, p.options.MaxSyntaxErrors)
	if errs == nil {
		errs = make([]string, 0)
	}

	return &ParseResult{
		ID:            uuid.New(),
		FilePath:      filePath,
		Language:      languageJavaScript,
		Hash:          hex.EncodeToString(hash[:]),
		Program:       program,
		NodeCount:     builder.nodes,
		Errors:        errs,
		ParsedAtMilli: time.Now().UnixMilli(),
	}, nil
}
