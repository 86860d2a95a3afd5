// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent provides an io.Writer that prefixes every line written to
// it, plus the box-drawing connectors used by tree Print methods.
package indent

import (
	"bytes"
	"io"
)

// String returns in with prefix prepended to the start of every line.
func String(prefix, in string) string {
	var buf bytes.Buffer
	w := NewWriter(&buf, prefix)
	w.Write([]byte(in))
	return buf.String()
}

// Bytes returns in with prefix prepended to the start of every line.
func Bytes(prefix, in []byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf, string(prefix))
	w.Write(in)
	return buf.Bytes()
}

// A Writer indents every line written to it with a fixed prefix before
// forwarding the result to an underlying io.Writer.
type Writer struct {
	w          io.Writer
	prefix     []byte
	needPrefix bool
}

// NewWriter returns a Writer that prepends prefix to each line written
// through it before forwarding to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), needPrefix: true}
}

// Write implements io.Writer. It reports, in terms of bytes of p (not of
// the transformed, prefixed output), how much of p the underlying writer
// durably accepted, so that a caller retrying a short write resumes at the
// right place in its own buffer.
func (iw *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf := make([]byte, 0, len(p)+len(iw.prefix)*4)
	cum := make([]int, len(p)+1)
	needPrefix := iw.needPrefix
	for i, b := range p {
		if needPrefix {
			buf = append(buf, iw.prefix...)
		}
		buf = append(buf, b)
		needPrefix = b == '\n'
		cum[i+1] = len(buf)
	}

	tn, err := iw.w.Write(buf)

	n := 0
	for i := len(p); i >= 0; i-- {
		if cum[i] <= tn {
			n = i
			break
		}
	}

	state := iw.needPrefix
	for i := 0; i < n; i++ {
		state = p[i] == '\n'
	}
	iw.needPrefix = state

	if n == len(p) && err == nil {
		return n, nil
	}
	if err == nil {
		err = io.ErrShortWrite
	}
	return n, err
}

// Branch returns the box-drawing connector drawn immediately before a
// child's own label: the elbow for the last child of a node, the tee for
// every other child. Used by tree Print methods (see pkg/otree) to render
// sibling structure, something the teacher's flat map[string]*Entry
// directory dump never needed to do.
func Branch(isLast bool) string {
	if isLast {
		return "└── "
	}
	return "├── "
}

// Continuation returns the prefix segment appended to a parent's own
// prefix when descending into one of its children: a vertical stem while
// more siblings follow, blank space once the last child's subtree has
// been entered.
func Continuation(isLast bool) string {
	if isLast {
		return "    "
	}
	return "│   "
}
