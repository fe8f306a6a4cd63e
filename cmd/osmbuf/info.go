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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmbuf"
	"m4o.io/osmbuf/cmd/osmbuf/cli"
	"m4o.io/osmbuf/opl"
)

var out io.Writer = os.Stdout

type info struct {
	BoundingBox   *osmbuf.BoundingBox `json:"bounding_box,omitempty"`
	NodeCount     int64               `json:"node_count"`
	WayCount      int64               `json:"way_count"`
	RelationCount int64               `json:"relation_count"`
	PackedBytes   int64               `json:"packed_bytes"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Uint16P("cpu", "c", uint16(runtime.GOMAXPROCS(-1)), "number of CPUs to use for scanning")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OPL file>]",
	Short: "Print information about an OPL file",
	Long:  "Print information about an OPL file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) == 1 {
			path = args[0]
		}

		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(path, !jsonfmt)
		if err != nil {
			log.Fatal(err)
		}

		i := runInfo(in, ncpu)

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(i)
		} else {
			renderTxt(i)
		}
	},
}

func runInfo(in io.Reader, ncpu uint16) *info {
	d := opl.NewDecoder(context.Background(), in, opl.WithNCpus(ncpu))

	i := &info{}
	bbox := osmbuf.InitialBoundingBox()

	for {
		buf, err := d.Decode()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			log.Fatal(err)
		}

		i.PackedBytes += int64(buf.Len())

		for e := range buf.Entities() {
			switch e.Type() {
			case osmbuf.ItemNode:
				i.NodeCount++

				bbox.ExpandWithLocation(e.Location())
			case osmbuf.ItemWay:
				i.WayCount++
			case osmbuf.ItemRelation:
				i.RelationCount++
			}
		}
	}

	if i.NodeCount > 0 {
		i.BoundingBox = bbox
	}

	return i
}

func renderJSON(i *info) {
	b, err := json.Marshal(i)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(i *info) {
	if i.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", i.BoundingBox)
	}

	fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(i.NodeCount))
	fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(i.WayCount))
	fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(i.RelationCount))
	fmt.Fprintf(out, "PackedBytes: %s\n", humanize.Bytes(uint64(i.PackedBytes)))
}
