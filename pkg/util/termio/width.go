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

// Package termio provides small terminal-awareness helpers shared by the
// command-line driver, distinct from the parser core which never touches a
// terminal itself.
package termio

import (
	"os"

	"golang.org/x/term"
)

// DefaultContextWidth is used whenever stdout is not a terminal (e.g. when
// output is piped or redirected to a file).
const DefaultContextWidth = 300

// ErrorContextWidth returns how many runes of source context should be shown
// on each side of a parsing error. When stdout is a terminal, this is scaled
// to roughly a third of the terminal's width so long error lines don't wrap;
// otherwise it falls back to DefaultContextWidth.
func ErrorContextWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultContextWidth
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultContextWidth
	}

	third := w / 3
	if third < 20 {
		third = 20
	}

	return third
}
