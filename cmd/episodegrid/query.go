package episodegrid

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/soundprediction/episodegrid"
	"github.com/soundprediction/episodegrid/pkg/render"
	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/soundprediction/episodegrid/pkg/view"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List entities whose label contains the query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withExplorer(cmd, func(explorer episodegrid.Explorer) error {
			return printCandidates(cmd.OutOrStdout(), explorer.Search(strings.Join(args, " ")))
		})
	},
}

var projectCmd = &cobra.Command{
	Use:   "project <entity-id|label>",
	Short: "Show the table of entities related to one entity",
	Long: `Show the table for one focus entity. The argument is tried as an entity id
first; otherwise it is searched and the first candidate whose label matches
exactly (ignoring case) is used, falling back to the first candidate.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withExplorer(cmd, func(explorer episodegrid.Explorer) error {
			id, ok := resolveFocus(explorer, strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("no entity matches %q", strings.Join(args, " "))
			}

			controller := view.NewController(nil)
			controller.Attach(explorer)
			return render.Text(cmd.OutOrStdout(), controller.Dispatch(view.CandidateSelected(id)))
		})
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the table columns derived from the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withExplorer(cmd, func(explorer episodegrid.Explorer) error {
			return printSchema(cmd.OutOrStdout(), explorer.Schema())
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, projectCmd, schemaCmd)
}

// withExplorer loads the dataset and runs fn against it.
func withExplorer(cmd *cobra.Command, fn func(episodegrid.Explorer) error) error {
	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := rt.open(ctx)
	if err != nil {
		rt.logger.Error("Failed to load dataset", "error", err)
		return err
	}
	return fn(client)
}

// resolveFocus maps a CLI argument to an entity id.
func resolveFocus(explorer episodegrid.Explorer, arg string) (string, bool) {
	if _, ok := explorer.Entity(arg); ok {
		return arg, true
	}
	candidates := explorer.Search(arg)
	if len(candidates) == 0 {
		return "", false
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Label, arg) {
			return c.ID, true
		}
	}
	return candidates[0].ID, true
}

func printCandidates(w io.Writer, nodes []types.Node) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL")
	for _, n := range nodes {
		fmt.Fprintf(tw, "%s\t%s\n", n.ID, n.Label)
	}
	return tw.Flush()
}

func printSchema(w io.Writer, s types.Schema) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tKEY\tFIXED")
	for _, c := range s.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", c.Title, c.Key, c.Fixed)
	}
	return tw.Flush()
}
