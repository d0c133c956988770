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
	"github.com/google/uuid"

	"github.com/AleutianAI/treequery/services/lint/estree"
)

// ParseResult is the output of parsing one JavaScript file.
//
// Description:
//
//	Program is always present on success, even when the source contains
//	syntax errors: the broken regions become estree.Unknown nodes and are
//	described in Errors. Parent links in Program are already wired.
//
// Thread Safety:
//
//	A ParseResult is not modified after Parse returns and may be shared
//	between goroutines for reading.
type ParseResult struct {
	// ID uniquely identifies this parse.
	ID uuid.UUID `json:"id" yaml:"id"`

	// FilePath is the path passed to Parse.
	FilePath string `json:"file_path" yaml:"file_path"`

	// Language is always "javascript".
	Language string `json:"language" yaml:"language"`

	// Hash is the hex SHA-256 of the parsed content.
	Hash string `json:"hash" yaml:"hash"`

	// Program is the root of the ESTree.
	Program *estree.Node `json:"-" yaml:"-"`

	// NodeCount is the number of ESTree nodes built.
	NodeCount int `json:"node_count" yaml:"node_count"`

	// Errors lists syntax errors as "path:line:col: message".
	Errors []string `json:"errors" yaml:"errors"`

	// ParsedAtMilli is the parse time in Unix milliseconds.
	ParsedAtMilli int64 `json:"parsed_at_milli" yaml:"parsed_at_milli"`
}

// HasErrors reports whether the source contained syntax errors.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}
