package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

var templateCmd = &cobra.Command{
	Use:   "template [sector]",
	Short: "Show the suggested photo checklist for a sector",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplate,
}

func init() {
	addOutputFlag(templateCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	sector, err := strconv.Atoi(args[0])
	if err != nil || sector < 0 {
		return fmt.Errorf("%w: sector %q", domain.ErrInvalidInput, args[0])
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	tmpl, err := jobService.Template(commandContext(cmd), sector)
	if err != nil {
		return err
	}

	if done, err := printStructured(cmd, format, tmpl); done {
		return err
	}

	cmd.Printf("Sector %d\n", tmpl.Sector)
	if len(tmpl.RequiredTypes) == 0 {
		cmd.Println("  (no required types)")
		return nil
	}
	for _, t := range tmpl.RequiredTypes {
		label, ok := tmpl.Label(t)
		if !ok {
			label = domain.TypeLabel(t)
		}
		cmd.Printf("  %-24s %s\n", t, label)
	}
	return nil
}
