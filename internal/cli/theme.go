package cli

import (
	"fmt"

	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Get or set the display theme",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the saved theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			fmt.Fprintln(cmd.OutOrStdout(), p.Theme())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Save the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{ui.ThemeLight, ui.ThemeDark},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := args[0]
			if theme != ui.ThemeLight && theme != ui.ThemeDark {
				return fmt.Errorf("unknown theme %q (want %s or %s)", theme, ui.ThemeLight, ui.ThemeDark)
			}

			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			surface := ui.NewSurface(p.Theme())
			p.SetTheme(surface, theme)
			newBanner(cmd).Show(ui.KindSuccess, "Theme set to "+surface.Theme())
			return nil
		},
	})

	return cmd
}
