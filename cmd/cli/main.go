package main

import (
	"context"
	"log"
	"os"

	"github.com/spineguard/spinectl/internal/buildinfo"
	"github.com/spineguard/spinectl/internal/client/cli"
	"github.com/spineguard/spinectl/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
