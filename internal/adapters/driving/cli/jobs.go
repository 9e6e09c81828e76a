package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage inspection jobs",
	Long: `List, inspect, create and delete inspection jobs.

Examples:
  fieldlens jobs list
  fieldlens jobs show 6650c1e2a4
  fieldlens jobs create --phone "+1 555 0100" --site S-104 --sector 1
  fieldlens jobs delete 6650c1e2a4 --purge`,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show [job-id]",
	Short: "Show one job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job",
	Long: `Create a job for a worker at a site.

The worker phone keeps a leading '+' and its digits; spaces, dashes and
brackets are dropped.`,
	Args: cobra.NoArgs,
	RunE: runJobsCreate,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete [job-id]",
	Short: "Delete a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDelete,
}

func init() {
	addOutputFlag(jobsListCmd)
	addOutputFlag(jobsShowCmd)
	addOutputFlag(jobsCreateCmd)

	jobsCreateCmd.Flags().String("phone", "", "worker phone number (required)")
	jobsCreateCmd.Flags().String("site", "", "site id")
	jobsCreateCmd.Flags().Int("sector", 1, "initial sector")
	_ = jobsCreateCmd.MarkFlagRequired("phone")

	jobsDeleteCmd.Flags().Bool("purge", false, "also delete the job's stored files")
	jobsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsShowCmd)
	jobsCmd.AddCommand(jobsCreateCmd)
	jobsCmd.AddCommand(jobsDeleteCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	cards, err := jobService.List(commandContext(cmd))
	if err != nil {
		return err
	}

	if done, err := printStructured(cmd, format, cards); done {
		return err
	}

	if len(cards) == 0 {
		cmd.Println("No jobs found.")
		return nil
	}

	cmd.Printf("%-26s  %-12s  %-16s  %-10s  %s\n", "ID", "SITE", "WORKER", "STATUS", "SECTORS")
	for _, c := range cards {
		cmd.Printf("%-26s  %-12s  %-16s  %-10s  %s\n",
			c.ID, orDash(c.SiteID), orDash(c.WorkerPhone), orDash(c.Status), sectorSummary(c))
	}
	return nil
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	card, err := jobService.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if done, err := printStructured(cmd, format, card); done {
		return err
	}
	printJobCard(cmd, card)
	return nil
}

func runJobsCreate(cmd *cobra.Command, _ []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	phone, _ := cmd.Flags().GetString("phone")
	site, _ := cmd.Flags().GetString("site")
	sector, _ := cmd.Flags().GetInt("sector")

	card, err := jobService.Create(commandContext(cmd), domain.CreateJobRequest{
		WorkerPhone: phone,
		SiteID:      site,
		Sector:      sector,
	})
	if err != nil {
		return err
	}

	if done, err := printStructured(cmd, format, card); done {
		return err
	}
	cmd.Printf("Created job %s\n", card.ID)
	return nil
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errNotConfigured("job")
	}
	purge, _ := cmd.Flags().GetBool("purge")
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		prompt := fmt.Sprintf("Delete job %s", args[0])
		if purge {
			prompt += " and its files"
		}
		cmd.Printf("%s? [y/N]: ", prompt)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := jobService.Delete(commandContext(cmd), args[0], purge); err != nil {
		return err
	}
	cmd.Printf("Deleted job %s\n", args[0])
	return nil
}

func printJobCard(cmd *cobra.Command, c *domain.JobCard) {
	cmd.Printf("Job:     %s\n", c.ID)
	cmd.Printf("Site:    %s\n", orDash(c.SiteID))
	cmd.Printf("Worker:  %s\n", orDash(c.WorkerPhone))
	cmd.Printf("Status:  %s\n", orDash(c.Status))
	cmd.Printf("Created: %s\n", orDash(c.CreatedAt))
	if len(c.Sectors) > 0 {
		cmd.Println("Sectors:")
		for _, s := range c.Sectors {
			cmd.Printf("  %d  %s\n", s.Sector, orDash(s.Status))
		}
	}
	if c.CanExportJob() {
		cmd.Println("Export:  ready")
	} else if len(c.DoneSectors) > 0 {
		cmd.Printf("Export:  sectors %s only\n", joinInts(c.DoneSectors))
	} else {
		cmd.Println("Export:  not ready")
	}
}

// sectorSummary renders "1✓ 2 3✓" where ✓ marks a DONE sector.
func sectorSummary(c domain.JobCard) string {
	if len(c.Sectors) == 0 {
		return domain.Placeholder
	}
	parts := make([]string, len(c.Sectors))
	for i, s := range c.Sectors {
		parts[i] = strconv.Itoa(s.Sector)
		if c.CanExportSector(s.Sector) {
			parts[i] += "✓"
		}
	}
	return strings.Join(parts, " ")
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
