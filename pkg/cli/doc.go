/*
Package cli provides shared helpers for the mapforge command: output
formatters, a progress reporter for batch imports, typed command errors, and
signal handling.

Output Formatting:

Commands render results as text, JSON, or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

CSV output requires the data to implement CSVMarshaler.

Progress Reporting:

Directory imports report per-file progress:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(int64(len(files)))
	for i, file := range files {
		// import file
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

Long-running commands stop on SIGINT/SIGTERM through a cancelled context:

	ctx := cli.SetupSignalHandler()
	// pass ctx to blocking operations
*/
package cli
