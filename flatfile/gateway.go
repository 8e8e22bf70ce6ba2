package flatfile

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/AntonStoeckl/flatfile-library-go/codec"
	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/table"
)

const (
	filePerm                = 0o644
	dirPerm                 = 0o755
	defaultBooksFile        = "books.txt"
	defaultUsersFile        = "users.txt"
	defaultTransactionsFile = "transactions.txt"
	logMsgFileRead          = "data file read"
	logMsgFileWritten       = "data file written"
	logMsgLineAppended      = "line appended"
	logMsgWriteFailed       = "writing data file failed"
	logMsgAppendFailed      = "appending to data file failed"
	logMsgFileMissing       = "data file missing, starting with an empty table"
	logMsgFileUnreadable    = "data file unreadable, starting with an empty table"
	logMsgLinesSkipped      = "malformed lines skipped"
	logMsgLoadTruncated     = "table capacity reached, remaining lines ignored"
	logMsgTableLoaded       = "table loaded"
	logAttrFile             = "file"
	logAttrTable            = "table"
	logAttrLines            = "lines"
	logAttrLoaded           = "loaded"
	logAttrSkipped          = "skipped"
	logAttrError            = "error"
)

// TableName addresses one of the data files.
type TableName string

// The data files managed by a Gateway.
const (
	Books        TableName = "books"
	Users        TableName = "users"
	Transactions TableName = "transactions"
)

// ErrUnknownTable is returned for a TableName without a file.
var ErrUnknownTable = errors.New("unknown table name")

// ErrCreatingDataDirFailed is returned by NewGateway when the data directory cannot be created.
var ErrCreatingDataDirFailed = errors.New("creating data directory failed")

// Gateway reads and writes the data files below one directory.
type Gateway struct {
	dir       string
	fileIO    FileIO
	fileNames map[TableName]string
	logger    Logger
}

// LoadReport summarizes LoadAll.
type LoadReport struct {
	Books table.ReloadResult
	Users table.ReloadResult
}

// NewGateway creates a Gateway for dir, creating the directory if it does not exist.
func NewGateway(dir string, options ...Option) (*Gateway, error) {
	g := &Gateway{
		dir:    dir,
		fileIO: NewDefaultFileIO(),
		fileNames: map[TableName]string{
			Books:        defaultBooksFile,
			Users:        defaultUsersFile,
			Transactions: defaultTransactionsFile,
		},
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	if dir != "" {
		if err := g.fileIO.MkdirAll(dir, dirPerm); err != nil {
			return nil, errors.Join(ErrCreatingDataDirFailed, err)
		}
	}

	return g, nil
}

// Path returns the file path backing name.
func (g *Gateway) Path(name TableName) (string, error) {
	fileName, ok := g.fileNames[name]
	if !ok {
		return "", ErrUnknownTable
	}

	return filepath.Join(g.dir, fileName), nil
}

// SnapshotWrite replaces the whole content of the named file with lines, one per record, in the given order.
func (g *Gateway) SnapshotWrite(name TableName, lines []string) error {
	path, err := g.Path(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := g.fileIO.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		g.logError(logMsgWriteFailed, logAttrFile, path, logAttrError, err.Error())
		return err
	}

	g.logDebug(logMsgFileWritten, logAttrFile, path, logAttrLines, len(lines))

	return nil
}

// LogAppend appends one line to the transaction log. The line is synced to disk before LogAppend returns.
func (g *Gateway) LogAppend(line string) error {
	path, err := g.Path(Transactions)
	if err != nil {
		return err
	}

	if err := g.fileIO.AppendFile(path, []byte(line+"\n"), filePerm); err != nil {
		g.logError(logMsgAppendFailed, logAttrFile, path, logAttrError, err.Error())
		return err
	}

	g.logDebug(logMsgLineAppended, logAttrFile, path)

	return nil
}

// ReadLines returns the lines of the named file in file order, without line terminators.
// A missing file yields an error matching fs.ErrNotExist.
func (g *Gateway) ReadLines(name TableName) ([]string, error) {
	path, err := g.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := g.fileIO.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := splitLines(data)

	g.logDebug(logMsgFileRead, logAttrFile, path, logAttrLines, len(lines))

	return lines, nil
}

// LoadAll reloads books and users from their files.
// A missing or unreadable file leaves the respective table empty; malformed lines are skipped.
func (g *Gateway) LoadAll(books *table.Table[core.Book], users *table.Table[core.User]) LoadReport {
	return LoadReport{
		Books: loadTable(g, Books, books, codec.DecodeBook),
		Users: loadTable(g, Users, users, codec.DecodeUser),
	}
}

func loadTable[T any](g *Gateway, name TableName, t *table.Table[T], decode func(string) (T, error)) table.ReloadResult {
	lines, err := g.ReadLines(name)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			g.logInfo(logMsgFileMissing, logAttrTable, string(name))
		default:
			g.logWarn(logMsgFileUnreadable, logAttrTable, string(name), logAttrError, err.Error())
		}

		lines = nil
	}

	result := t.Reload(lines, decode)

	if result.Skipped > 0 {
		g.logWarn(logMsgLinesSkipped, logAttrTable, string(name), logAttrSkipped, result.Skipped, logAttrError, result.FirstErr.Error())
	}

	if result.Truncated {
		g.logWarn(logMsgLoadTruncated, logAttrTable, string(name), logAttrLoaded, result.Loaded)
	}

	g.logInfo(logMsgTableLoaded, logAttrTable, string(name), logAttrLoaded, result.Loaded)

	return result
}

// splitLines splits on '\n' without a per-line limit, so one oversized line cannot hide the others.
// A trailing '\r' is dropped from every line and a final terminator does not start an extra line.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	data = bytes.TrimSuffix(data, []byte{'\n'})

	chunks := bytes.Split(data, []byte{'\n'})
	lines := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		lines = append(lines, string(bytes.TrimSuffix(chunk, []byte{'\r'})))
	}

	return lines
}

func (g *Gateway) logDebug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

func (g *Gateway) logInfo(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Info(msg, args...)
	}
}

func (g *Gateway) logWarn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}

func (g *Gateway) logError(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Error(msg, args...)
	}
}
