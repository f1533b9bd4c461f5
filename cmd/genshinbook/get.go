package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"genshinbook/internal/api"
	"genshinbook/internal/domain"
	"genshinbook/internal/logging"
	"genshinbook/internal/navigator"
	"genshinbook/internal/ui/views"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "get [path]",
		Short: "Print one node of the taxonomy and exit",
		Long: `Fetches a single path, e.g. "characters/klee", and prints it the way the
browser would show it. Without a path the root category list is printed.`,
		Example: `  genshinbook get
  genshinbook get characters
  genshinbook get characters/klee --base-url http://localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			if err := logging.SetupStderr(cfg.Log.Level); err != nil {
				return err
			}

			path := splitPath(args)
			targetURL := api.URL(cfg.API.BaseURL, path)
			log.WithField("url", targetURL).Debug("get")

			ctx, stop := commandContext(cmd)
			defer stop()

			payload, err := api.NewClient(cfg.HTTP).Do(ctx, targetURL)
			if err != nil {
				return err
			}
			value := navigator.Resolve(path, payload)

			out := cmd.OutOrStdout()
			if listOnly {
				if domain.Classify(value) != domain.KindList {
					return fmt.Errorf("%s is not a list", domain.Breadcrumb(path))
				}
				for _, label := range domain.Labels(value) {
					fmt.Fprintln(out, label)
				}
				return nil
			}

			text, err := views.FormatJSON(value, cfg.UISettings.Indent)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "Print list entries one per line")
	return cmd
}

// splitPath turns "a/b" or "a b" arguments into path segments
func splitPath(args []string) []string {
	path := []string{}
	for _, arg := range args {
		for _, segment := range strings.Split(arg, "/") {
			if segment != "" {
				path = append(path, segment)
			}
		}
	}
	return path
}
