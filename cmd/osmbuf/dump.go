// Copyright 2025-26 the original author or authors.
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

package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmbuf"
	"m4o.io/osmbuf/cmd/osmbuf/cli"
	"m4o.io/osmbuf/opl"
)

func init() {
	cli.RootCmd.AddCommand(dumpCmd)

	flags := dumpCmd.Flags()
	flags.BoolP("sizes", "s", false, "print record footprints")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [<OPL file>]",
	Short: "Print a debug rendering of the packed records",
	Long:  "Print a debug rendering of the packed records built from an OPL file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) == 1 {
			path = args[0]
		}

		in, err := cli.OpenInput(path, false)
		if err != nil {
			log.Fatal(err)
		}

		sizes, err := cmd.Flags().GetBool("sizes")
		if err != nil {
			log.Fatal(err)
		}

		d := opl.NewDecoder(context.Background(), in)
		dump := osmbuf.NewDump(os.Stdout, osmbuf.WithRecordSizes(sizes))

		for {
			buf, err := d.Decode()
			if errors.Is(err, io.EOF) {
				break
			} else if err != nil {
				log.Fatal(err)
			}

			if err := dump.Buffer(buf); err != nil {
				log.Fatal(err)
			}
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}
	},
}
