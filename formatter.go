package harness

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/infra/harness-report/reporting"
)

// ResultFormatter is responsible for formatting and displaying a report overview.
type ResultFormatter interface {
	FormatResults(doc reporting.Document) error
}

// ConsoleResultFormatter implements the ResultFormatter interface.
type ConsoleResultFormatter struct {
	logger log.Logger
	out    io.Writer
	table  *reporting.TableFormatter
}

// NewConsoleResultFormatter creates a new ConsoleResultFormatter writing to out.
func NewConsoleResultFormatter(logger log.Logger, out io.Writer, title string) *ConsoleResultFormatter {
	return &ConsoleResultFormatter{
		logger: logger,
		out:    out,
		table:  reporting.NewTableFormatter(title),
	}
}

// FormatResults renders the overview table and writes it out.
func (f *ConsoleResultFormatter) FormatResults(doc reporting.Document) error {
	f.logger.Debug("Printing results...")
	content, err := f.table.Format(doc)
	if err != nil {
		return fmt.Errorf("failed to format results table: %w", err)
	}
	if _, err := io.WriteString(f.out, content); err != nil {
		return fmt.Errorf("failed to print results table: %w", err)
	}
	return nil
}
