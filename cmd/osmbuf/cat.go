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
	"runtime"

	"github.com/spf13/cobra"

	"m4o.io/osmbuf/cmd/osmbuf/cli"
	"m4o.io/osmbuf/opl"
)

var catOut *os.File

func init() {
	cli.RootCmd.AddCommand(catCmd)

	flags := catCmd.Flags()
	flags.Uint16P("cpu", "c", uint16(runtime.GOMAXPROCS(-1)), "number of CPUs to use for parsing")
	flags.VarP(cli.NewWriterValue(os.Stdout, &catOut, "file"), "output", "o", "file to write normalized OPL to")
}

var catCmd = &cobra.Command{
	Use:   "cat [<OPL file>]",
	Short: "Stream OPL data through packed buffers and back out",
	Long:  "Stream OPL data through packed buffers and back out, normalizing the line layout",
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

		ncpu, err := cmd.Flags().GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		d := opl.NewDecoder(context.Background(), in, opl.WithNCpus(ncpu))
		e := opl.NewEncoder(catOut)

		for {
			buf, err := d.Decode()
			if errors.Is(err, io.EOF) {
				break
			} else if err != nil {
				log.Fatal(err)
			}

			if err := e.Encode(buf); err != nil {
				log.Fatal(err)
			}
		}

		if err := e.Close(); err != nil {
			log.Fatal(err)
		}

		if catOut != os.Stdout {
			if err := catOut.Close(); err != nil {
				log.Fatal(err)
			}
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}
	},
}
