package main

import (
	fxmodules "predecessor-tracker/internal/fx"
	"predecessor-tracker/internal/poller"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Core,
		poller.Module,
	).Run()
}
