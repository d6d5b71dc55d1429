// Copyright 2025 The Flowbyte Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/flowbyte/flowbyte/stream"
	"github.com/flowbyte/flowbyte/stream/spdy"
)

var spdyCmd = &cobra.Command{
	Use:   "spdy",
	Short: "Pack and inspect SPDY/3 name-value header blocks",
}

var spdyPackCmd = &cobra.Command{
	Use:   "pack <name=value>...",
	Short: "Encode header pairs into a length-prefixed SPDY/3 name-value block on stdout",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSpdyPack(args); err != nil {
			fmt.Fprintf(os.Stderr, "spdy pack failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var spdyInspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a length-prefixed SPDY/3 name-value block and print it as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSpdyInspect(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "spdy inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	spdyCmd.AddCommand(spdyPackCmd, spdyInspectCmd)
	rootCmd.AddCommand(spdyCmd)
}

func runSpdyPack(args []string) error {
	pairs := make([]spdy.NameValuePair, 0, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("malformed pair %q, expected name=value", a)
		}
		pairs = append(pairs, spdy.NameValuePair{Name: []byte(name), Value: []byte(value)})
	}

	encoded, err := spdy.EncodeNameValueBlock(pairs)
	if err != nil {
		return err
	}

	length := len(encoded)
	header := []byte{
		byte(length >> 24), byte(length >> 16), byte(length >> 8), byte(length),
	}
	if _, err := os.Stdout.Write(header); err != nil {
		return err
	}
	_, err = os.Stdout.Write(encoded)
	return err
}

func runSpdyInspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	deadline := stream.NoDeadline()
	upstream := stream.FromReader(f)

	lenBuf := stream.NewBuffer()
	defer lenBuf.Close()
	if err := stream.Require(upstream, lenBuf, 4, deadline); err != nil {
		return err
	}
	raw, _ := lenBuf.ReadByteSlice(4)
	length := int64(uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3]))

	leftover := stream.NewBuffer()
	defer leftover.Close()
	reader := spdy.NewNameValueBlockReader(leftover, upstream)
	defer reader.Close(deadline)

	pairs, err := reader.ReadNameValueBlock(length, deadline)
	if err != nil {
		return err
	}

	type jsonPair struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	out := make([]jsonPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, jsonPair{Name: string(p.Name), Value: string(p.Value)})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
