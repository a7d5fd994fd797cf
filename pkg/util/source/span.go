// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

// Span identifies a run of characters in a source file by their indices, with
// the end being exclusive.  Keeping indices rather than a string slice allows
// the enclosing line of a span to be recovered, and allows spans from the
// same file to be compared and joined.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span from a start index and an (exclusive) end index.
// The end cannot precede the start.
func NewSpan(start int, end int) Span {
	if end < start {
		panic("invalid span")
	}
	//
	return Span{start, end}
}

// Start returns the index of the first character in this span.
func (p *Span) Start() int {
	return p.start
}

// End returns the index one past the last character in this span.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters in this span.
func (p *Span) Length() int {
	return p.end - p.start
}

// IsEmpty checks whether this span covers no characters at all.
func (p *Span) IsEmpty() bool {
	return p.start == p.end
}

// Compare orders spans by their start index, breaking ties by their end
// index.  This gives the order in which non-overlapping edits of a file
// should be applied.
func (p *Span) Compare(other Span) int {
	if p.start != other.start {
		return p.start - other.start
	}
	//
	return p.end - other.end
}

// Join returns the smallest span enclosing both this span and another.
func (p *Span) Join(other Span) Span {
	return Span{min(p.start, other.start), max(p.end, other.end)}
}
