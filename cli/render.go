package cli

import (
	"io"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/AntonStoeckl/flatfile-library-go/core"
)

const (
	statusAvailable = "Available"
	statusIssued    = "Issued"
	jsonIndent      = "  "
)

type statusPrinter struct {
	success *color.Color
	info    *color.Color
	failure *color.Color
}

func newStatusPrinter() statusPrinter {
	return statusPrinter{
		success: color.New(color.FgGreen),
		info:    color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (p statusPrinter) setEnabled(enabled bool) {
	for _, c := range []*color.Color{p.success, p.info, p.failure} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func bookRows(books []core.Book) [][]string {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		status := statusAvailable
		if !b.Available {
			status = statusIssued
		}
		rows = append(rows, []string{b.Title, b.Author, b.ISBN, status})
	}

	return rows
}

func userRows(users []core.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Contact})
	}

	return rows
}

// transactionRows puts undecodable log lines into the first column unchanged.
func transactionRows(entries []core.LogEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Decoded() {
			rows = append(rows, []string{entry.Line, "", "", ""})
			continue
		}

		tx := entry.Transaction
		rows = append(rows, []string{tx.UserID, tx.BookISBN, string(tx.Action), tx.Timestamp})
	}

	return rows
}

var (
	bookHeaders        = []string{"Title", "Author", "ISBN", "Status"}
	userHeaders        = []string{"User ID", "Name", "Contact"}
	transactionHeaders = []string{"User ID", "Book ISBN", "Action", "Time"}
)

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignLeft
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header(headers)

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

func renderJSON(w io.Writer, v any) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", jsonIndent)

	return encoder.Encode(v)
}
