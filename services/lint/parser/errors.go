// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for parse failure conditions. Check with errors.Is.
var (
	// ErrParseFailed indicates that tree-sitter could not produce a tree.
	//
	// This is different from syntax errors, which are reported in
	// ParseResult.Errors while still returning a (partial) Program.
	ErrParseFailed = errors.New("parse failed")

	// ErrInvalidContent indicates content that is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrFileTooLarge indicates content larger than MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")

	// ErrContextCanceled indicates that parsing was canceled via context.
	// The returned error also wraps the context's own error.
	ErrContextCanceled = errors.New("parse canceled")
)

// ParseError locates a parse failure in a source file.
//
// Example:
//
//	result, err := p.Parse(ctx, content, "app.js")
//	if err != nil {
//	    var parseErr *ParseError
//	    if errors.As(err, &parseErr) {
//	        fmt.Printf("%s: %v\n", parseErr.FilePath, parseErr.Cause)
//	    }
//	}
type ParseError struct {
	// FilePath is the path to the file where the error occurred.
	FilePath string

	// Line is the 1-indexed line number, or 0 if unknown.
	Line int

	// Column is the 0-indexed column, or 0 if unknown.
	Column int

	// Message describes the error in human-readable form.
	Message string

	// Cause is the underlying error. May be nil.
	Cause error
}

// Error returns "file:line:col: message", dropping unknown location parts.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// WrapParseError wraps err with file context.
//
// An error that already is or wraps a ParseError is returned unchanged.
// A nil error yields nil.
func WrapParseError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}

	return &ParseError{
		FilePath: filePath,
		Message:  err.Error(),
		Cause:    err,
	}
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// canceledError joins ErrContextCanceled with the context's own error so
// that both errors.Is(err, ErrContextCanceled) and
// errors.Is(err, context.Canceled) hold.
func canceledError(stage string, ctxErr error) error {
	return fmt.Errorf("javascript parse canceled %s: %w: %w", stage, ErrContextCanceled, ctxErr)
}
