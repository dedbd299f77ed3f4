package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikolaydubina/caption.go/caption"
)

const name = "caption_random_test_img"

var ErrArgCount = errors.New("wrong number of arguments")

// request is validated command line.
type request struct {
	ModelType  caption.ModelType
	ImageID    int
	HasImageID bool
}

func usage() string {
	var b strings.Builder
	b.WriteString("must be called in one of the following ways:")
	for _, t := range caption.ModelTypes {
		fmt.Fprintf(&b, "\n$ %s %s [img_id]", name, t)
	}
	return b.String()
}

// parseArgs checks arguments without touching any file.
func parseArgs(args []string) (request, error) {
	if len(args) < 1 || len(args) > 2 {
		return request{}, fmt.Errorf("%w: %d\n%s", ErrArgCount, len(args), usage())
	}

	t, err := caption.ParseModelType(args[0])
	if err != nil {
		return request{}, fmt.Errorf("%w\n%s", err, usage())
	}
	req := request{ModelType: t}

	if len(args) == 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return request{}, fmt.Errorf("img_id must be integer: %w\n%s", err, usage())
		}
		req.ImageID, req.HasImageID = id, true
	}
	return req, nil
}

// NewCLI is root command, run is called only with valid arguments.
func NewCLI(run func(request) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <model_type> [img_id]",
		Short: "Caption test image with pretrained model",
		Long: "Generates caption for test image img_id, or for random test image.\n" +
			"Attention models also render attention over image for every word.",
		Example: strings.TrimPrefix(usage(), "must be called in one of the following ways:\n"),
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := parseArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid, do not print usage on runtime errors
			cmd.SilenceUsage = true
			req, err := parseArgs(args)
			if err != nil {
				return err
			}
			return run(req)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
}
