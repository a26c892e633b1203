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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EvgSkv/logica/pkg/span"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] file.l",
	Short: "Parse a Logica file, reporting import failures apart from other errors.",
	Long: `Parse a Logica file the same way "parse" does. Exit 0 when the file parses,
exit 1 with a distinct diagnosis when the error is an import problem (file
not found, a circular import, or an unused or undefined synonym), and exit 2
after rendering any other error.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		_, err := parseFileArg(cmd, args[0])
		if err == nil {
			fmt.Printf("%s: ok\n", args[0])
			return
		}

		pe, ok := err.(*span.ParsingError)
		if !ok {
			fmt.Println(err)
			os.Exit(2)
		}

		if pe.Kind() == span.Import {
			fmt.Printf("%s: import diagnostic: %s\n", args[0], pe.Message())
			os.Exit(1)
		}

		reportError(err)
		os.Exit(2)
	},
}
