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
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/EvgSkv/logica/pkg/logica"
	"github.com/EvgSkv/logica/pkg/span"
	"github.com/EvgSkv/logica/pkg/util/termio"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.l",
	Short: "Parse a Logica file and report its rule count, or the first parsing error.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		result, err := parseFileArg(cmd, args[0])
		if err != nil {
			reportError(err)
			os.Exit(1)
		}

		fmt.Printf("%s: %d rule(s), %d import(s)\n", args[0], len(result.Rules), len(result.Imports))
	},
}

func init() {
	parseCmd.Flags().BoolP("verbose", "V", false, "Enable debug logging")
}

func importRoots(cmd *cobra.Command) []string {
	raw := getString(cmd, "path")
	if raw == "" {
		return nil
	}

	return strings.Split(raw, ":")
}

func parseFileArg(cmd *cobra.Command, filename string) (*logica.FileResult, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	resolver := logica.NewResolver(importRoots(cmd), func(path string) ([]byte, error) {
		return os.ReadFile(path)
	})

	return logica.ParseFile(content, "main", resolver)
}

func reportError(err error) {
	var pe *span.ParsingError
	if e, ok := err.(*span.ParsingError); ok {
		pe = e
	}

	if pe == nil {
		fmt.Println(err)
		return
	}

	fmt.Println(pe.Render(termio.ErrorContextWidth()))
}
