package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/sortbase/internal/inventory"
	"github.com/nhle/sortbase/internal/model"
	"github.com/nhle/sortbase/internal/tree"
	"github.com/nhle/sortbase/internal/ui/format"
)

func newTreeCmd(a *App) *cobra.Command {
	var withTotals bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the list hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, err := a.openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer st.Close()

			printTree(cmd.OutOrStdout(), s, a.formatter(), withTotals)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withTotals, "totals", false, "Show aggregate totals per list")
	return cmd
}

// printTree writes the overview order of lists, each followed by its
// sublists and items in that list's view order.
func printTree(w io.Writer, s *inventory.Session, f format.Formatter, withTotals bool) {
	var walk func(lists []*model.List, depth int)
	walk = func(lists []*model.List, depth int) {
		for _, l := range lists {
			indent := strings.Repeat("  ", depth)
			line := fmt.Sprintf("%s%s", indent, l.Name)
			if l.Category != "" {
				line += " [" + l.Category + "]"
			}
			line += "  (" + l.ID + ")"
			if withTotals && !l.HideFinancials {
				t := tree.ComputeTotals(l)
				line += fmt.Sprintf("  paid %s, worth %s, %s %s",
					f.Money(t.PurchasePrice), f.Money(t.CurrentValue),
					strings.ToLower(format.Label(format.Classify(t.Profit))), f.Profit(t.Profit))
			}
			fmt.Fprintln(w, line)

			v, err := s.Contents(l.ID)
			if err != nil {
				continue
			}
			walk(v.Sublists, depth+1)
			for _, it := range v.Items {
				fmt.Fprintf(w, "%s  - %s\n", indent, it.Name)
			}
		}
	}
	walk(s.OverviewLists(), 0)
}

func newTotalsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "totals <list-id>",
		Short: "Print the aggregate totals of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, err := a.openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer st.Close()

			t, err := s.Totals(args[0])
			if err != nil {
				return err
			}
			l := s.FindList(args[0])
			c := tree.CountContents(l)
			f := a.formatter()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", l.Name)
			fmt.Fprintf(out, "items:          %s\n", format.Count(c.Items))
			fmt.Fprintf(out, "sublists:       %s\n", format.Count(c.Sublists))
			fmt.Fprintf(out, "purchase price: %s\n", f.Money(t.PurchasePrice))
			fmt.Fprintf(out, "current value:  %s\n", f.Money(t.CurrentValue))
			fmt.Fprintf(out, "profit:         %s\n", f.Profit(t.Profit))
			return nil
		},
	}
}
