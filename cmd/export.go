package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/atlas/internal/export"
	"github.com/theirongolddev/atlas/internal/pipeline"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile and transactions (json, csv or xlsx)",
	Example: `  atlas export -o backup.json
  atlas export --format csv --month 2024-03 > march.csv
  atlas export --format xlsx -o ledger.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore a JSON backup; transactions are appended with new IDs",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "json, csv or xlsx (default from the file extension, else json)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout; required for xlsx)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

// exportFormat resolves --format, falling back to the output extension.
func exportFormat(format, output string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch format {
	case "", "json":
		return "json", nil
	case "csv", "xlsx":
		return format, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, csv or xlsx)", format)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := exportFormat(flagExportFormat, flagExportOutput)
	if err != nil {
		return err
	}
	if format == "xlsx" && flagExportOutput == "" {
		return fmt.Errorf("xlsx export needs --output")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	txs := e.app.Ledger.List()
	if format != "json" && cmd.Flags().Changed("month") {
		txs = pipeline.FilterByMonth(txs, e.month)
	}

	var w io.Writer = e.out
	if flagExportOutput != "" {
		f, err := os.Create(flagExportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOutput, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		err = export.WriteJSON(w, export.NewBackup(e.app.Profiles.Current(), txs, e.app.Now()))
	case "csv":
		err = export.WriteCSV(w, txs)
	case "xlsx":
		err = export.WriteXLSX(w, txs)
	}
	if err != nil {
		return fmt.Errorf("writing %s export: %w", format, err)
	}

	e.log.Info().Str("format", format).Int("transactions", len(txs)).Msg("export written")
	if flagExportOutput != "" {
		e.confirm("Exported %s transactions to %s", humanize.Comma(int64(len(txs))), flagExportOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := export.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := export.Import(e.ctx, b, e.app.Ledger, e.app.Profiles)
	if err != nil {
		return fmt.Errorf("import stopped after %d transactions: %w", res.Added, err)
	}

	e.log.Info().Int("added", res.Added).Int("skipped", res.Skipped).Bool("profile", res.ProfileReplaced).Msg("backup imported")
	e.confirm("Imported %s transactions, skipped %d", humanize.Comma(int64(res.Added)), res.Skipped)
	if res.ProfileReplaced {
		e.confirm("Profile replaced from backup")
	}
	for _, p := range res.Problems {
		fmt.Fprintln(cmd.ErrOrStderr(), "  skipped "+p)
	}
	return nil
}
