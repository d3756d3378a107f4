package cli

import (
	"fmt"

	"taskgrid-cli/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only browser view of the grid",
		Long: `Serve starts an HTTP server rendering the current list through the
same filter pipeline the CLI uses. The page is read-only; ?list=, ?quick=,
?sort= and ?dir= query parameters override the view per request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve the store dir up front so a bad --dir fails before binding.
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "serving http://%s (ctrl-c to stop)\n", displayAddr(addr))
			srv := &web.Server{Store: s, Addr: addr}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("TASKGRID_ADDR", "127.0.0.1:7475"), "Listen address")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
