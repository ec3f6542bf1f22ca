package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rl1809/updatechecker/internal/adapter/fetcher"
	"github.com/rl1809/updatechecker/internal/core/service"
)

var forgetCmd = &cobra.Command{
	Use:   "forget <id>",
	Short: "Delete every recorded version of one software",
	Long: `Delete the latest pointer and every historical version of one software.
Deletions appear on the mutation feed but never produce a notification.

The id is observed again on the next cycle unless it is also removed from the
registry.`,
	Args: cobra.ExactArgs(1),
	RunE: runForget,
}

func init() {
	RootCmd.AddCommand(forgetCmd)
}

func runForget(cmd *cobra.Command, args []string) error {
	id := args[0]
	st, err := openStack(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewRefreshService(st.store, nil, nil, 1, 0)
	deleted, err := svc.Forget(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "deleted %d records of %s\n", deleted, id)
	if registry, err := fetcher.LoadRegistry(cfg.RegistryFile); err == nil {
		if _, tracked := registry.Entry(id); tracked {
			fmt.Fprintf(out, "%s is still listed in %s and will be observed again\n", id, cfg.RegistryFile)
		}
	}
	return nil
}
