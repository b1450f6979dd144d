package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NoreeIsmael/Next-Project/internal/engine"
	"github.com/NoreeIsmael/Next-Project/internal/model"
	"github.com/NoreeIsmael/Next-Project/internal/output"
)

var readCmd = &cobra.Command{
	Use:   "read <log-name>",
	Short: "Read entries from one log file",
	Long: `Read reassembled entries from <log-name>.log under the configured
root, newest or oldest first, gated by severity.

Examples:
  loglens read backend
  loglens read backend --order desc --amount 20
  loglens read backend --severity CRITICAL --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntP("amount", "n", model.DefaultAmount, "maximum entries to return")
	readCmd.Flags().StringP("severity", "s", "INFO", "severity gate: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	readCmd.Flags().String("order", "asc", "order: asc (oldest first) or desc (newest first)")
	readCmd.Flags().StringP("output", "o", "text", "output format: text, json")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	entries, err := engine.Read(viper.GetString("root"), q)
	if err != nil {
		return err
	}

	var renderer output.Renderer
	outputFmt, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(outputFmt) {
	case "json":
		renderer = output.NewJSONRenderer()
	default:
		renderer = output.NewTextRenderer()
	}

	for _, e := range entries {
		if err := renderer.Render(e); err != nil {
			log.Printf("render error: %v", err)
		}
	}
	return nil
}

// queryFromFlags builds the retrieval query. Config-file defaults apply
// whenever the matching flag was not given on the command line.
func queryFromFlags(cmd *cobra.Command, logName string) (model.LogQuery, error) {
	q := model.DefaultQuery(logName)

	q.Amount = viper.GetInt("defaults.amount")
	severityTok := viper.GetString("defaults.severity")
	orderTok := viper.GetString("defaults.order")

	if cmd.Flags().Changed("amount") {
		q.Amount, _ = cmd.Flags().GetInt("amount")
	}
	if cmd.Flags().Changed("severity") {
		severityTok, _ = cmd.Flags().GetString("severity")
	}
	if cmd.Flags().Changed("order") {
		orderTok, _ = cmd.Flags().GetString("order")
	}

	sev, err := model.ParseSeverity(severityTok)
	if err != nil {
		return q, err
	}
	q.Severity = sev

	switch model.Order(orderTok) {
	case model.OrderAsc, model.OrderDesc:
		q.Order = model.Order(orderTok)
	default:
		return q, fmt.Errorf("invalid order %q", orderTok)
	}

	return q, q.Validate()
}
