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
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowbyte/flowbyte/common"
	"github.com/flowbyte/flowbyte/confengine"
	"github.com/flowbyte/flowbyte/internal/rescue"
	"github.com/flowbyte/flowbyte/internal/sigs"
	"github.com/flowbyte/flowbyte/logger"
	"github.com/flowbyte/flowbyte/metrics"
	"github.com/flowbyte/flowbyte/server"
	"github.com/flowbyte/flowbyte/stream"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the debug/metrics HTTP server and report live segment pool stats",
	Run: func(cmd *cobra.Command, args []string) {
		defer rescue.HandleCrash()
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "serve failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	serverCfg := server.Config{
		Enabled: true,
		Address: ":8080",
		Metrics: true,
		Timeout: 10 * time.Second,
	}
	if configPath != "" {
		cfg, err := confengine.LoadConfigPath(configPath)
		if err != nil {
			return err
		}
		if cfg.Has("server") {
			if err := cfg.UnpackChild("server", &serverCfg); err != nil {
				return err
			}
		}
	}

	metrics.Register(common.GetBuildInfo())

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			metrics.PollUptimeGauge()
			metrics.PollPoolGauge()
		}
	}()

	srv, err := newDemoServer(serverCfg)
	if err != nil {
		return err
	}

	log := logger.Named("serve")
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Errorf("server stopped: %v", err)
		}
	}()

	log.Infof("serving on %s", serverCfg.Address)
	sigs.WaitForSignal(func() {
		if configPath == "" {
			return
		}
		cfg, err := confengine.LoadConfigPath(configPath)
		if err != nil {
			log.Errorf("reload failed: %v", err)
			return
		}
		if !cfg.Has("logger") {
			return
		}
		var opts logger.Options
		if err := cfg.UnpackChild("logger", &opts); err != nil {
			log.Errorf("reload failed: %v", err)
			return
		}
		logger.SetOptions(opts)
		log.Infof("reloaded logger options from %s", configPath)
	})
	return nil
}

// newDemoServer builds a server.Server by round-tripping cfg through a tiny
// YAML document, since server.New only knows how to read a confengine.Config.
func newDemoServer(cfg server.Config) (*server.Server, error) {
	yaml := "server:\n" +
		"  enabled: " + strconv.FormatBool(cfg.Enabled) + "\n" +
		"  address: " + cfg.Address + "\n" +
		"  pprof: " + strconv.FormatBool(cfg.Pprof) + "\n" +
		"  metrics: " + strconv.FormatBool(cfg.Metrics) + "\n" +
		"  timeout: " + cfg.Timeout.String() + "\n"

	loaded, err := confengine.LoadContent([]byte(yaml))
	if err != nil {
		return nil, err
	}
	srv, err := server.New(loaded)
	if err != nil {
		return nil, err
	}
	srv.RegisterGetRoute("/debug/pool", func(w http.ResponseWriter, r *http.Request) {
		stats := stream.Stats()
		_ = json.NewEncoder(w).Encode(stats)
	})
	return srv, nil
}
