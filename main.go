// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/avelardi/placebook/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
