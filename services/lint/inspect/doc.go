// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package inspect runs the treequery helpers over JavaScript files and
// collects the answers into per-file reports.
//
// A report lists every call with its callee chain and truthy literal
// arguments, named assignment targets, destructured bindings of tracked
// objects, methods with their size and emptiness, and the first out-of-order
// member of each object literal and class body.
package inspect
