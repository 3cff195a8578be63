// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Command build defines the tasks for checking, testing and deploying the skill
// server.
package main

import (
	"github.com/curioswitch/go-build"
	"github.com/curioswitch/go-curiostack/tasks"
	"github.com/goyek/x/boot"
)

func main() {
	// Server tasks build and push the skill's container image from the module root.
	tasks.DefineServer()
	build.DefineTasks()
	boot.Main()
}
