package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NoreeIsmael/Next-Project/internal/catalog"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the log files under the configured root",
	RunE:  runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	files, err := catalog.List(viper.GetString("root"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("NAME", "LINES")
	for _, f := range files {
		if err := table.Append([]string{f.Name, strconv.Itoa(f.Amount)}); err != nil {
			return err
		}
	}
	return table.Render()
}
