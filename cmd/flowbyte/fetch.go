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
	"bufio"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowbyte/flowbyte/confengine"
	"github.com/flowbyte/flowbyte/logger"
	"github.com/flowbyte/flowbyte/stream"
	"github.com/flowbyte/flowbyte/stream/gzip"
)

var fetchConfig struct {
	Timeout time.Duration
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a URL over a real TCP connection, streaming the body through the segmented buffer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := runID()
		if err := runFetch(args[0], id); err != nil {
			logger.Errorf("[%s] fetch failed: %v", id, err)
			fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	fetchCmd.Flags().DurationVar(&fetchConfig.Timeout, "timeout", 10*time.Second, "overall deadline for the fetch")
	rootCmd.AddCommand(fetchCmd)
}

// runFetch issues a plain HTTP/1.1 GET, then decodes the response body
// through a Source chain: the response body as net/http reads it off the
// TCP connection, optionally wrapped in a gzip.Source when the server
// replied with Content-Encoding: gzip.
func runFetch(rawURL string, id string) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Connection", "close")

	addr := req.URL.Host
	if req.URL.Port() == "" {
		addr = net.JoinHostPort(req.URL.Hostname(), "80")
	}

	deadline := stream.After(fetchConfig.Timeout)
	if configPath != "" {
		cfg, err := confengine.LoadConfigPath(configPath)
		if err != nil {
			return err
		}
		if d, err := cfg.StreamDeadline("fetch"); err != nil {
			return err
		} else if d.HasDeadline() {
			deadline = d
		}
	}
	conn, err := net.DialTimeout("tcp", addr, fetchConfig.Timeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Infof("[%s] connected to %s", id, addr)
	if err := req.Write(conn); err != nil {
		return err
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	logger.Infof("[%s] %s -> %s", id, rawURL, resp.Status)

	var src stream.Source = stream.FromReader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		src = gzip.New(src)
	}
	defer src.Close(deadline)

	dst := stream.NewBuffer()
	defer dst.Close()

	var total int64
	for {
		rn, err := src.Read(dst, int64(stream.SegSize), deadline)
		if err != nil {
			return err
		}
		if rn == -1 {
			break
		}
		total += rn
		if err := dst.Skip(rn); err != nil {
			return err
		}
	}
	logger.Infof("[%s] read %d decoded bytes", id, total)
	fmt.Printf("%d bytes\n", total)
	return nil
}
