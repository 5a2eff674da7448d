package main

import (
	"context"
	"fmt"
	"os"

	"github.com/robert-malhotra/go-cql-filter/pkg/cql"
	"github.com/urfave/cli/v3"
)

func newWKTCommand() *cli.Command {
	return &cli.Command{
		Name:      "wkt",
		Usage:     "Convert a GeoJSON geometry to Well-Known Text",
		ArgsUsage: "<geojson | @file>",
		Action:    wktAction,
	}
}

func wktAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: a GeoJSON geometry or @file")
	}

	geometry, err := loadGeometry(cmd.Args().First())
	if err != nil {
		return err
	}

	text, err := cql.ToWKT(geometry)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}
