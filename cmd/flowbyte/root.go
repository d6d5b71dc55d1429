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

// Command flowbyte exercises the segmented buffer and streaming decoders
// end to end: fetching a response over a real TCP connection, and encoding
// or decoding gzip bodies and SPDY/3 name-value blocks from the command
// line.
package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flowbyte/flowbyte/common"
	"github.com/flowbyte/flowbyte/logger"
)

var (
	version   string
	gitHash   string
	buildTime string
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "flowbyte",
	Short: "Segmented buffer and SPDY/3 streaming I/O toolkit",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLoggerLevel(logLevel)
	},
}

func init() {
	common.SetBuildInfo(version, gitHash, buildTime)
	rootCmd.Version = common.GetBuildInfo().String()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (server/logger/fetch options)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
}

// runID returns a fresh correlation ID used to tie together the log lines
// of a single fetch/decode invocation.
func runID() string {
	return uuid.NewString()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
