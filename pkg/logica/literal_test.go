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

package logica

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsVariableName(t *testing.T) {
	require.True(t, IsVariableName("x"))
	require.True(t, IsVariableName("_hidden"))
	require.False(t, IsVariableName("Predicate"))
	require.False(t, IsVariableName(""))
}

func TestParseLiteralReturnsNoneForNonLiteral(t *testing.T) {
	lit, err := ParseLiteral(spanOf("SomeVar"))
	require.NoError(t, err)
	require.False(t, lit.HasValue())
}

func TestParseLiteralParsesBoolAndNull(t *testing.T) {
	lit, err := ParseLiteral(spanOf("true"))
	require.NoError(t, err)
	require.True(t, lit.HasValue())
	require.Equal(t, "bool", lit.Unwrap().(*Literal).Kind)

	lit, err = ParseLiteral(spanOf("null"))
	require.NoError(t, err)
	require.Equal(t, "null", lit.Unwrap().(*Literal).Kind)
}
