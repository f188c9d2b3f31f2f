// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfo carries build-time metadata injected through linker flags.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// String renders the metadata for the dashboard footer and startup log.
func (b BuildInfo) String() string {
	return fmt.Sprintf("version %s (%s, %s)", orNA(b.Version), orNA(b.Date), orNA(b.Commit))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
