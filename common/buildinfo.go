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

package common

import "fmt"

// BuildInfo 代表程序构建信息
type BuildInfo struct {
	Version string
	GitHash string
	Time    string
}

var (
	buildVersion string
	buildTime    string
	buildHash    string
)

// SetBuildInfo overrides the package-level build metadata. cmd/flowbyte's
// root command calls this once at startup with the version/gitHash/buildTime
// values -ldflags injects into its own package, so common.GetBuildInfo stays
// the single source of truth for the CLI's --version flag and the build_info
// metric the serve command registers.
func SetBuildInfo(version, gitHash, time string) {
	buildVersion = version
	buildHash = gitHash
	buildTime = time
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version: buildVersion,
		GitHash: buildHash,
		Time:    buildTime,
	}
}

// String renders the build info the way the flowbyte CLI's --version flag
// presents it.
func (b BuildInfo) String() string {
	if b.Version == "" {
		return "dev"
	}
	return fmt.Sprintf("%s (%s, built %s)", b.Version, b.GitHash, b.Time)
}
